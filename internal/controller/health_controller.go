package controller

import (
	"ai-interview-be/internal/repository/memory"
	"ai-interview-be/pkg/speech"
	"ai-interview-be/pkg/vision"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	sessions  *memory.SessionRepository
	speechSvc speech.Service
	visionSvc vision.Service
}

func NewHealthController(sessions *memory.SessionRepository, speechSvc speech.Service, visionSvc vision.Service) IHealthController {
	return &healthController{
		sessions:  sessions,
		speechSvc: speechSvc,
		visionSvc: visionSvc,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":          "healthy",
		"active_sessions": c.sessions.Count(),
		"speech":          c.speechSvc.Status(),
		"vision":          c.visionSvc.Status(),
	})
}
