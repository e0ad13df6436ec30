package socket

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/cache"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/gomodule/redigo/redis"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

type tradeDto struct {
	Game_id string             `json:"game_id"`
	User_id string             `json:"user_id"`
	To      string             `json:"to"`
	Trade   string             `json:"trade_id"`
	Offer   models.TradeBundle `json:"offer"`
	Request models.TradeBundle `json:"request"`
}

// CreateSocketIOServer runs the realtime command surface. Every event maps
// onto one engine service call; results are broadcast to the game room.
func CreateSocketIOServer(svc *engine.Service) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}

	pool := cache.CreateRedisPool()
	defer pool.Close()

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		var req map[string]string
		json.Unmarshal([]byte(jsonStr), &req)

		if err := svc.Join(req["game_id"], req["user_id"], req["username"]); err != nil {
			s.Emit("error-message", err.Error())
			s.Emit("failed")
			return
		}
		s.Join(req["game_id"])
		server.BroadcastToRoom("/", req["game_id"], "player-join", req["username"])
		s.Emit("joined-game")
	})

	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		var req map[string]string
		json.Unmarshal([]byte(jsonStr), &req)

		if err := svc.Leave(req["game_id"], req["user_id"]); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		s.Leave(req["game_id"])
		server.BroadcastToRoom("/", req["game_id"], "player-left", req["user_id"])
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, gameId string) {
		if err := svc.Start(gameId, false); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		sess, err := svc.Get(gameId)
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		conn := pool.Get()
		defer conn.Close()
		broadcastState(server, &conn, sess)
		server.BroadcastToRoom("/", gameId, "change-turn", sess.CurrentPlayer())
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		var req map[string]string
		json.Unmarshal([]byte(jsonStr), &req)

		res, err := svc.TakeTurn(req["game_id"], req["user_id"])
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		payload, _ := json.Marshal(res)
		server.BroadcastToRoom("/", req["game_id"], "turn-result", string(payload))
		refreshCache(pool, svc, req["game_id"])
	})

	server.OnEvent("/", "decision", func(s socketio.Conn, jsonStr string) {
		var req struct {
			Game_id string              `json:"game_id"`
			User_id string              `json:"user_id"`
			Kind    models.DecisionKind `json:"kind"`
			Cell_id int                 `json:"cell_id"`
		}
		json.Unmarshal([]byte(jsonStr), &req)

		res, err := svc.ResolveDecision(req.Game_id, req.User_id, models.Decision{Kind: req.Kind, CellId: req.Cell_id})
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		payload, _ := json.Marshal(res)
		server.BroadcastToRoom("/", req.Game_id, "action-result", string(payload))
		refreshCache(pool, svc, req.Game_id)
	})

	server.OnEvent("/", "buy-house", func(s socketio.Conn, jsonStr string) {
		var req struct {
			Game_id string `json:"game_id"`
			User_id string `json:"user_id"`
			Cell_id int    `json:"cell_id"`
		}
		json.Unmarshal([]byte(jsonStr), &req)

		res, err := svc.BuildHouse(req.Game_id, req.User_id, req.Cell_id)
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		payload, _ := json.Marshal(res)
		server.BroadcastToRoom("/", req.Game_id, "action-result", string(payload))
	})

	server.OnEvent("/", "propose-trade", func(s socketio.Conn, jsonStr string) {
		var req tradeDto
		json.Unmarshal([]byte(jsonStr), &req)

		id, err := svc.ProposeTrade(req.Game_id, req.User_id, req.To, req.Offer, req.Request)
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		server.BroadcastToRoom("/", req.Game_id, "trade-proposed", id)
	})

	server.OnEvent("/", "accept-trade", func(s socketio.Conn, jsonStr string) {
		handleTradeReply(server, s, svc, jsonStr, svc.AcceptTrade, "trade-accepted")
	})

	server.OnEvent("/", "reject-trade", func(s socketio.Conn, jsonStr string) {
		handleTradeReply(server, s, svc, jsonStr, svc.RejectTrade, "trade-rejected")
	})

	server.OnEvent("/", "cancel-trade", func(s socketio.Conn, jsonStr string) {
		handleTradeReply(server, s, svc, jsonStr, svc.CancelTrade, "trade-cancelled")
	})

	server.OnEvent("/", "end-turn", func(s socketio.Conn, jsonStr string) {
		var req map[string]string
		json.Unmarshal([]byte(jsonStr), &req)

		if err := svc.EndTurn(req["game_id"], req["user_id"]); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		sess, err := svc.Get(req["game_id"])
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		server.BroadcastToRoom("/", req["game_id"], "change-turn", sess.CurrentPlayer())
		refreshCache(pool, svc, req["game_id"])
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Err(e).Msg("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		for _, room := range s.Rooms() {
			server.BroadcastToRoom("/", room, "player-left")
		}
		s.LeaveAll()
	})

	// Expire overdue trade offers; the engine never self-schedules.
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			svc.SweepTrades()
		}
	}()

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	addr := ":" + os.Getenv("SOCKET_PORT")
	if addr == ":" {
		addr = ":8000"
	}
	http.ListenAndServe(addr, c.Handler(mux))
}

func handleTradeReply(server *socketio.Server, s socketio.Conn, svc *engine.Service, jsonStr string,
	op func(string, string, string) (models.ActionResult, error), event string) {
	var req tradeDto
	json.Unmarshal([]byte(jsonStr), &req)

	res, err := op(req.Game_id, req.Trade, req.User_id)
	if err != nil {
		s.Emit("error-message", err.Error())
		return
	}
	payload, _ := json.Marshal(res)
	server.BroadcastToRoom("/", req.Game_id, event, string(payload))
}

// refreshCache mirrors the current turn and latest snapshot into redis so
// reads never touch the session lock.
func refreshCache(pool *redis.Pool, svc *engine.Service, gameId string) {
	sess, err := svc.Get(gameId)
	if err != nil {
		return
	}
	conn := pool.Get()
	defer conn.Close()
	if err := cache.Set(cache.TurnKey(gameId), sess.CurrentPlayer(), &conn); err != nil {
		log.Warn().Err(err).Str("game", gameId).Msg("caching current turn failed")
	}
	snap, err := json.Marshal(sess.Snapshot())
	if err != nil {
		return
	}
	if err := cache.Set(cache.SnapshotKey(gameId), string(snap), &conn); err != nil {
		log.Warn().Err(err).Str("game", gameId).Msg("caching snapshot failed")
	}
}

func broadcastState(server *socketio.Server, conn *redis.Conn, sess *engine.GameSession) {
	snap := sess.Snapshot()
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Error().Err(err).Str("game", sess.Id).Msg("encoding state failed")
		return
	}
	server.BroadcastToRoom("/", sess.Id, "game-start", string(payload))
	if err := cache.Set(cache.TurnKey(sess.Id), sess.CurrentPlayer(), conn); err != nil {
		log.Warn().Err(err).Str("game", sess.Id).Msg("caching current turn failed")
	}
	if err := cache.Set(cache.SnapshotKey(sess.Id), string(payload), conn); err != nil {
		log.Warn().Err(err).Str("game", sess.Id).Msg("caching snapshot failed")
	}
}
