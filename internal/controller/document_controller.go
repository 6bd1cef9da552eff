package controller

import (
	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/pkg/serverutils"
	"fin-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	IngestFolder(ctx *fiber.Ctx) error
	ListByCategory(ctx *fiber.Ctx) error
	ListFiltered(ctx *fiber.Ctx) error
	SemanticSearch(ctx *fiber.Ctx) error
	ListGrouped(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Ingest)
	h.Post("folder", c.IngestFolder)
	h.Post("semantic-search", c.SemanticSearch)
	h.Get("grouped", c.ListGrouped)
	h.Get("filtered", c.ListFiltered)
	h.Get("category/:category", c.ListByCategory)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Ingest(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest document", res))
}

func (c *documentController) IngestFolder(ctx *fiber.Ctx) error {
	var req dto.IngestFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.IngestFolder(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest folder", res))
}

func (c *documentController) ListByCategory(ctx *fiber.Ctx) error {
	category := ctx.Params("category")
	if category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "category is required")
	}

	res, err := c.documentService.ListByCategory(ctx.Context(), category)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) SemanticSearch(ctx *fiber.Ctx) error {
	var req dto.SemanticSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.SemanticSearch(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success semantic search", res))
}

// ListFiltered answers GET filtered?category=&code= with the AND of
// whichever query filters are present.
func (c *documentController) ListFiltered(ctx *fiber.Ctx) error {
	var category, code *string
	if v := ctx.Query("category"); v != "" {
		category = &v
	}
	if v := ctx.Query("code"); v != "" {
		code = &v
	}
	if category == nil && code == nil {
		return fiber.NewError(fiber.StatusBadRequest, "category or code is required")
	}

	res, err := c.documentService.ListFiltered(ctx.Context(), code, category)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success filtered search", res))
}

func (c *documentController) ListGrouped(ctx *fiber.Ctx) error {
	res, err := c.documentService.ListGrouped(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list grouped documents", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	if err := c.documentService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete document", nil))
}
