package controllers

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/database"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// GameController exposes the lobby over HTTP. The engine service is handed
// in at construction; there is no global game registry.
type GameController struct {
	Svc *engine.Service
}

func NewGameController(svc *engine.Service) *GameController {
	return &GameController{Svc: svc}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	id := gc.Svc.CreateSession(gameCreateDto.Creator)
	game := &models.Game{
		Id:      id,
		Name:    gameCreateDto.Name,
		Creator: gameCreateDto.Creator,
		Status:  string(models.GameLobby),
	}
	if _, err := db.Model(game).Insert(); err != nil {
		log.Error().Err(err).Str("game", id).Msg("inserting game row failed")
		gc.Svc.Remove(id)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"id": id})
}

func (gc *GameController) VerifyGame(c *fiber.Ctx) error {
	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	sess, err := gc.Svc.Get(verifyGameDto.Code)
	if err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": sess.State() == models.GameLobby})
}

func (gc *GameController) GetAllAvailGames(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	var games []models.Game
	err := db.Model(&games).Where("status = ?", string(models.GameLobby)).Select()
	if err != nil {
		log.Error().Err(err).Msg("listing games failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(games)
}

func (gc *GameController) FindAvailGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	name := c.Query("name")
	game := new(models.Game)
	err := db.Model(game).Where("name = ? and status = ?", name, string(models.GameLobby)).First()
	if err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true, "id": game.Id})
}

// EndGame force-finishes a session and reports the winner if any.
func (gc *GameController) EndGame(c *fiber.Ctx) error {
	id := c.Query("id")
	winner, ok, err := gc.Svc.EndGame(id)
	if err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	if !ok {
		return c.JSON(fiber.Map{"status": true, "winner": nil})
	}
	return c.JSON(fiber.Map{"status": true, "winner": winner})
}
