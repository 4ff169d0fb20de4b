package handlers

import (
	"context"
	"time"

	"github.com/biosecret/voice-todo/store"
	"github.com/gofiber/fiber/v2"
)

const pingTimeout = 2 * time.Second

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Store         string `json:"store"`
}

type StatusHandler struct {
	store   store.Pinger
	started time.Time
	now     func() time.Time
}

func NewStatusHandler(p store.Pinger, started time.Time) *StatusHandler {
	return &StatusHandler{store: p, started: started, now: time.Now}
}

// HandleStatus godoc
// @Summary  Report uptime and store connectivity
// @Tags     status
// @Produce  json
// @Success  200 {object} StatusResponse
// @Failure  503 {object} StatusResponse
// @Router   /status [get]
func (h *StatusHandler) HandleStatus(c *fiber.Ctx) error {
	uptime := h.now().Sub(h.started).Truncate(time.Second)
	resp := StatusResponse{
		Status:        "ok",
		Uptime:        uptime.String(),
		UptimeSeconds: int64(uptime.Seconds()),
		Store:         "connected",
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Store = "disconnected"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
