package websocket

import (
	"errors"

	"competency-assessment-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IProgressController interface {
	RegisterRoutes(api fiber.Router)
}

type progressController struct {
	hub     *Hub
	service service.IAssessmentService
}

func NewProgressController(hub *Hub, svc service.IAssessmentService) IProgressController {
	return &progressController{hub: hub, service: svc}
}

// RegisterRoutes exposes GET /assessments/:id/live as a websocket stream of
// the session's events.
func (c *progressController) RegisterRoutes(api fiber.Router) {
	api.Use("/assessments/:id/live", c.upgrade)
	api.Get("/assessments/:id/live", websocket.New(func(conn *websocket.Conn) {
		ServeWs(c.hub, conn, conn.Params("id"))
	}))
}

func (c *progressController) upgrade(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := c.service.GetSession(ctx.UserContext(), ctx.Params("id")); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.Next()
}

// ServeWs registers the connection and blocks until the peer goes away.
func ServeWs(hub *Hub, conn *websocket.Conn, sessionID string) {
	client := &Client{Hub: hub, Conn: conn, SessionID: sessionID, Send: make(chan []byte, 64)}
	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
