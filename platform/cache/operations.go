package cache

import (
	"fmt"

	"github.com/gomodule/redigo/redis"
)

// Keys per game: "<game>" holds the current player id, "<game>.snapshot"
// the latest serialized session for cheap reads by the socket layer.

func TurnKey(gameId string) string     { return gameId }
func SnapshotKey(gameId string) string { return fmt.Sprintf("%s.snapshot", gameId) }

func Get(key string, conn *redis.Conn) (string, error) {
	return redis.String((*conn).Do("GET", key))
}

func Set(key string, value interface{}, conn *redis.Conn) error {
	reply, err := redis.String((*conn).Do("SET", key, value))
	if err != nil {
		return err
	}
	if reply != "OK" {
		return fmt.Errorf("unexpected reply %q setting %s", reply, key)
	}
	return nil
}

func Del(key string, conn *redis.Conn) error {
	_, err := (*conn).Do("DEL", key)
	return err
}

func HSET(key string, field string, value interface{}, conn *redis.Conn) error {
	_, err := (*conn).Do("HSET", key, field, value)
	return err
}

func HGET(key string, field string, conn *redis.Conn) (string, error) {
	return redis.String((*conn).Do("HGET", key, field))
}
