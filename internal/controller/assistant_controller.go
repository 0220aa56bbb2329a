package controller

import (
	"ai-assistant-client/internal/backend"
	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// IAssistantController serves chat, search, code analysis and the dashboard. Health is
// mounted separately so it stays reachable without a token.
type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	ChatHistory(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	AnalyzeCode(ctx *fiber.Ctx) error
	Dashboard(ctx *fiber.Ctx) error
}

type assistantController struct {
	chatService      backend.IChatService
	toolService      backend.IToolService
	dashboardService backend.IDashboardService
}

func NewAssistantController(
	chatService backend.IChatService,
	toolService backend.IToolService,
	dashboardService backend.IDashboardService,
) IAssistantController {
	return &assistantController{
		chatService:      chatService,
		toolService:      toolService,
		dashboardService: dashboardService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Get("/dashboard", c.Dashboard)

	r.Post("/chat", c.Chat)
	r.Get("/chat/history/:session_id", c.ChatHistory)
	r.Delete("/chats/:id", c.deleteActivity(entity.KindChat))

	r.Post("/search", c.Search)
	r.Delete("/searches/:id", c.deleteActivity(entity.KindSearch))

	r.Post("/code/analyze", c.AnalyzeCode)
	r.Delete("/code/:id", c.deleteActivity(entity.KindCode))
}

func (c *assistantController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{Status: "ok", Message: "AI Assistant stub API is running"})
}

type chatBody struct {
	Message   string  `json:"message" validate:"required"`
	SessionId *string `json:"session_id"`
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req chatBody
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.UserContext(), &dto.ChatRequest{Message: req.Message, SessionId: req.SessionId})
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *assistantController) ChatHistory(ctx *fiber.Ctx) error {
	return ctx.JSON(c.chatService.History(ctx.UserContext(), ctx.Params("session_id")))
}

type searchBody struct {
	Query string `json:"query" validate:"required"`
	Type  string `json:"type"`
}

func (c *assistantController) Search(ctx *fiber.Ctx) error {
	var req searchBody
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.toolService.Search(ctx.UserContext(), &dto.SearchRequest{Query: req.Query, Type: req.Type})
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *assistantController) AnalyzeCode(ctx *fiber.Ctx) error {
	var req dto.CodeTaskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.toolService.AnalyzeCode(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *assistantController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.dashboardService.Snapshot(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *assistantController) deleteActivity(kind entity.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := c.toolService.DeleteActivity(ctx.UserContext(), kind, ctx.Params("id")); err != nil {
			return err
		}
		return ctx.JSON(dto.MessageResponse{Message: "Deleted successfully"})
	}
}
