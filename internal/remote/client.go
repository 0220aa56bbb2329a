package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/gateway"
)

// IClient is the typed view of the assistant HTTP API.
type IClient interface {
	Health(ctx context.Context) (*dto.HealthResponse, error)
	Dashboard(ctx context.Context) (entity.DashboardSnapshot, error)

	ListNotes(ctx context.Context, filter dto.NoteFilter) ([]entity.Note, error)
	CreateNote(ctx context.Context, req dto.CreateNoteRequest) (entity.Note, error)
	UpdateNote(ctx context.Context, id string, req dto.UpdateNoteRequest) error

	ListReminders(ctx context.Context, upcoming bool) ([]entity.Reminder, error)
	CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (entity.Reminder, error)

	SetCompleted(ctx context.Context, kind entity.Kind, id string, completed bool) error
	Delete(ctx context.Context, kind entity.Kind, id string) error

	Chat(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error)
	ChatHistory(ctx context.Context, sessionId string) ([]dto.ChatHistoryItem, error)
	Search(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error)
	AnalyzeCode(ctx context.Context, req dto.CodeTaskRequest) (dto.CodeTaskResponse, error)
}

type client struct {
	gw gateway.IGateway
}

func NewClient(gw gateway.IGateway) IClient {
	return &client{gw: gw}
}

func (c *client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var res dto.HealthResponse
	if err := c.gw.Do(ctx, gateway.Operation{Method: http.MethodGet, Path: "/api/health"}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *client) Dashboard(ctx context.Context) (entity.DashboardSnapshot, error) {
	var res entity.DashboardSnapshot
	err := c.gw.Do(ctx, gateway.Operation{Method: http.MethodGet, Path: "/api/dashboard"}, &res)
	return res, err
}

func (c *client) ListNotes(ctx context.Context, filter dto.NoteFilter) ([]entity.Note, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Tag != "" {
		query.Set("tag", filter.Tag)
	}

	var res []entity.Note
	err := c.gw.Do(ctx, gateway.Operation{Method: http.MethodGet, Path: "/api/notes", Query: query}, &res)
	return res, err
}

func (c *client) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (entity.Note, error) {
	var res entity.Note
	err := c.gw.Do(ctx, gateway.Operation{Method: http.MethodPost, Path: "/api/notes", Body: req}, &res)
	return res, err
}

func (c *client) UpdateNote(ctx context.Context, id string, req dto.UpdateNoteRequest) error {
	return c.gw.Do(ctx, gateway.Operation{
		Method: http.MethodPut,
		Path:   "/api/notes/" + url.PathEscape(id),
		Body:   req,
	}, nil)
}

func (c *client) ListReminders(ctx context.Context, upcoming bool) ([]entity.Reminder, error) {
	var query url.Values
	if upcoming {
		query = url.Values{"upcoming": {"true"}}
	}

	var res []entity.Reminder
	err := c.gw.Do(ctx, gateway.Operation{Method: http.MethodGet, Path: "/api/reminders", Query: query}, &res)
	return res, err
}

func (c *client) CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (entity.Reminder, error) {
	var res entity.Reminder
	err := c.gw.Do(ctx, gateway.Operation{Method: http.MethodPost, Path: "/api/reminders", Body: req}, &res)
	return res, err
}

// SetCompleted issues PUT /api/{resource}/{id}/complete or .../uncomplete.
func (c *client) SetCompleted(ctx context.Context, kind entity.Kind, id string, completed bool) error {
	if !kind.Completable() {
		return fmt.Errorf("%s entities cannot be completed", kind)
	}
	resource, err := kind.Resource()
	if err != nil {
		return err
	}
	action := "uncomplete"
	if completed {
		action = "complete"
	}
	return c.gw.Do(ctx, gateway.Operation{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/%s/%s/%s", resource, url.PathEscape(id), action),
	}, nil)
}

func (c *client) Delete(ctx context.Context, kind entity.Kind, id string) error {
	resource, err := kind.Resource()
	if err != nil {
		return err
	}
	return c.gw.Do(ctx, gateway.Operation{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/%s/%s", resource, url.PathEscape(id)),
	}, nil)
}

func (c *client) Chat(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error) {
	var res dto.ChatResponse
	err := c.gw.Do(ctx, gateway.Operation{Method: http.MethodPost, Path: "/api/chat", Body: req}, &res)
	return res, err
}

func (c *client) ChatHistory(ctx context.Context, sessionId string) ([]dto.ChatHistoryItem, error) {
	var res []dto.ChatHistoryItem
	err := c.gw.Do(ctx, gateway.Operation{
		Method: http.MethodGet,
		Path:   "/api/chat/history/" + url.PathEscape(sessionId),
	}, &res)
	return res, err
}

func (c *client) Search(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error) {
	var res dto.SearchResponse
	err := c.gw.Do(ctx, gateway.Operation{Method: http.MethodPost, Path: "/api/search", Body: req}, &res)
	return res, err
}

func (c *client) AnalyzeCode(ctx context.Context, req dto.CodeTaskRequest) (dto.CodeTaskResponse, error) {
	var res dto.CodeTaskResponse
	err := c.gw.Do(ctx, gateway.Operation{Method: http.MethodPost, Path: "/api/code/analyze", Body: req}, &res)
	return res, err
}
