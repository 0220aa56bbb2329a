package controller

import (
	"ai-assistant-client/internal/backend"
	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IReminderController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Uncomplete(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type reminderController struct {
	reminderService backend.IReminderService
}

func NewReminderController(reminderService backend.IReminderService) IReminderController {
	return &reminderController{
		reminderService: reminderService,
	}
}

func (c *reminderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reminders")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Put(":id/complete", c.Complete)
	h.Put(":id/uncomplete", c.Uncomplete)
	h.Delete(":id", c.Delete)
}

type reminderBody struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func (c *reminderController) Create(ctx *fiber.Ctx) error {
	var req reminderBody
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reminderService.Create(ctx.UserContext(), &dto.CreateReminderRequest{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *reminderController) List(ctx *fiber.Ctx) error {
	res, err := c.reminderService.List(ctx.UserContext(), ctx.QueryBool("upcoming"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *reminderController) Complete(ctx *fiber.Ctx) error {
	if err := c.reminderService.SetCompleted(ctx.UserContext(), ctx.Params("id"), true); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Reminder completed successfully"})
}

func (c *reminderController) Uncomplete(ctx *fiber.Ctx) error {
	if err := c.reminderService.SetCompleted(ctx.UserContext(), ctx.Params("id"), false); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Reminder reopened successfully"})
}

func (c *reminderController) Delete(ctx *fiber.Ctx) error {
	if err := c.reminderService.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Reminder deleted successfully"})
}
