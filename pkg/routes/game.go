package routes

import (
	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, gc *controllers.GameController) {
	route := a.Group("/game")
	route.Post("create", gc.CreateGame)
	route.Get("/verify", gc.VerifyGame)
	route.Get("/all", gc.GetAllAvailGames)
	route.Get("/find", gc.FindAvailGame)
	route.Post("/end", gc.EndGame)
}
