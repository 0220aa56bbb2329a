package controller

import (
	"ai-assistant-client/internal/backend"
	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Uncomplete(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService backend.INoteService
}

func NewNoteController(noteService backend.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Put(":id/complete", c.Complete)
	h.Put(":id/uncomplete", c.Uncomplete)
	h.Delete(":id", c.Delete)
}

type noteBody struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"omitempty,oneof=general work personal study"`
	Tags     []string `json:"tags"`
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req noteBody
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), &dto.CreateNoteRequest{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	res, err := c.noteService.List(ctx.UserContext(), dto.NoteFilter{
		Category: ctx.Query("category"),
		Tag:      ctx.Query("tag"),
	})
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	var req noteBody
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	err := c.noteService.Update(ctx.UserContext(), ctx.Params("id"), &dto.UpdateNoteRequest{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Note updated successfully"})
}

func (c *noteController) Complete(ctx *fiber.Ctx) error {
	if err := c.noteService.SetCompleted(ctx.UserContext(), ctx.Params("id"), true); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Note completed successfully"})
}

func (c *noteController) Uncomplete(ctx *fiber.Ctx) error {
	if err := c.noteService.SetCompleted(ctx.UserContext(), ctx.Params("id"), false); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Note reopened successfully"})
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	if err := c.noteService.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Note deleted successfully"})
}
