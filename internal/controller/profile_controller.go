package controller

import (
	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/pkg/serverutils"
	"fin-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Score(ctx *fiber.Ctx) error
	Recommend(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("score", c.Score)
	h.Post("recommend", c.Recommend)
}

func (c *profileController) Score(ctx *fiber.Ctx) error {
	var req dto.ScoreProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.Score(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success score profile", res))
}

func (c *profileController) Recommend(ctx *fiber.Ctx) error {
	var req dto.ScoreProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.RecommendDocuments(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success recommend documents", res))
}
