package service

import (
	"context"
	"sync"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/pkg/events"
)

// fakeClient is a remote.IClient whose behaviour is set per test through function fields.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	dashboard      func() (entity.DashboardSnapshot, error)
	listNotes      func() ([]entity.Note, error)
	listReminders  func() ([]entity.Reminder, error)
	createNote     func(dto.CreateNoteRequest) (entity.Note, error)
	createReminder func(dto.CreateReminderRequest) (entity.Reminder, error)
	updateNote     func(string, dto.UpdateNoteRequest) error
	setCompleted   func(entity.Kind, string, bool) error
	delete         func(entity.Kind, string) error
	chat           func(dto.ChatRequest) (dto.ChatResponse, error)
	search         func(dto.SearchRequest) (dto.SearchResponse, error)
	analyze        func(dto.CodeTaskRequest) (dto.CodeTaskResponse, error)
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Health(ctx context.Context) (*dto.HealthResponse, error) {
	f.record("health")
	return &dto.HealthResponse{Status: "healthy"}, nil
}

func (f *fakeClient) Dashboard(ctx context.Context) (entity.DashboardSnapshot, error) {
	f.record("dashboard")
	if f.dashboard == nil {
		return entity.DashboardSnapshot{}, nil
	}
	return f.dashboard()
}

func (f *fakeClient) ListNotes(ctx context.Context, filter dto.NoteFilter) ([]entity.Note, error) {
	f.record("list notes")
	if f.listNotes == nil {
		return nil, nil
	}
	return f.listNotes()
}

func (f *fakeClient) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (entity.Note, error) {
	f.record("create note")
	return f.createNote(req)
}

func (f *fakeClient) UpdateNote(ctx context.Context, id string, req dto.UpdateNoteRequest) error {
	f.record("update note " + id)
	if f.updateNote == nil {
		return nil
	}
	return f.updateNote(id, req)
}

func (f *fakeClient) ListReminders(ctx context.Context, upcoming bool) ([]entity.Reminder, error) {
	f.record("list reminders")
	if f.listReminders == nil {
		return nil, nil
	}
	return f.listReminders()
}

func (f *fakeClient) CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (entity.Reminder, error) {
	f.record("create reminder")
	return f.createReminder(req)
}

func (f *fakeClient) SetCompleted(ctx context.Context, kind entity.Kind, id string, completed bool) error {
	action := "uncomplete"
	if completed {
		action = "complete"
	}
	f.record(action + " " + string(kind) + " " + id)
	if f.setCompleted == nil {
		return nil
	}
	return f.setCompleted(kind, id, completed)
}

func (f *fakeClient) Delete(ctx context.Context, kind entity.Kind, id string) error {
	f.record("delete " + string(kind) + " " + id)
	if f.delete == nil {
		return nil
	}
	return f.delete(kind, id)
}

func (f *fakeClient) Chat(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error) {
	f.record("chat")
	return f.chat(req)
}

func (f *fakeClient) ChatHistory(ctx context.Context, sessionId string) ([]dto.ChatHistoryItem, error) {
	f.record("history " + sessionId)
	return nil, nil
}

func (f *fakeClient) Search(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error) {
	f.record("search")
	return f.search(req)
}

func (f *fakeClient) AnalyzeCode(ctx context.Context, req dto.CodeTaskRequest) (dto.CodeTaskResponse, error) {
	f.record("analyze")
	return f.analyze(req)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []string
	infos  []string
}

func (n *recordingNotifier) Alert(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, message)
}

func (n *recordingNotifier) Info(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, message)
}

func (n *recordingNotifier) Alerts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.alerts...)
}

type staticConfirmer bool

func (c staticConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	return bool(c), nil
}

type countingTrigger struct {
	mu sync.Mutex
	n  int
}

func (t *countingTrigger) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n++
}

func (t *countingTrigger) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}
