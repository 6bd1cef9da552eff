package controller

import (
	"fin-advisor-be/internal/pkg/logger"
	"fin-advisor-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

const logPageLimit = 100

type ILogController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetLogById(ctx *fiber.Ctx) error
}

// logController exposes the rotating application log for operators.
type logController struct {
	log logger.ILogger
}

func NewLogController(log logger.ILogger) ILogController {
	return &logController{
		log: log,
	}
}

func (c *logController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/log/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetLogs)
	h.Get(":id", c.GetLogById)
}

func (c *logController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", logPageLimit)
	offset := ctx.QueryInt("offset", 0)
	if limit <= 0 || limit > 1000 {
		limit = logPageLimit
	}

	entries, err := c.log.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", entries))
}

func (c *logController) GetLogById(ctx *fiber.Ctx) error {
	entry, err := c.log.GetLogById(ctx.Params("id"))
	if err != nil {
		return err
	}
	if entry == nil {
		return fiber.NewError(fiber.StatusNotFound, "log entry not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get log", entry))
}
