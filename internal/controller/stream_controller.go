package controller

import (
	internalWS "notes-app/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IStreamController interface {
	RegisterRoutes(r fiber.Router)
}

type streamController struct {
	hub *internalWS.Hub
}

func NewStreamController(hub *internalWS.Hub) IStreamController {
	return &streamController{hub: hub}
}

func (c *streamController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ws")
	h.Use(requireUpgrade)
	h.Get("/notes", websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeWs(c.hub, conn)
	}))
}

func requireUpgrade(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}
