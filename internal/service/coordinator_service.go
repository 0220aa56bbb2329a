package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/pkg/serverutils"
	"ai-assistant-client/internal/remote"
	"ai-assistant-client/internal/state"
	"ai-assistant-client/pkg/events"
	"ai-assistant-client/pkg/guard"

	"github.com/scylladb/go-set/strset"
)

// ICoordinatorService is the only entry point that mutates notes, reminders and the activity feed.
type ICoordinatorService interface {
	ToggleComplete(ctx context.Context, kind entity.Kind, id string, currentCompleted bool) error
	DeleteEntity(ctx context.Context, kind entity.Kind, id string) error
	CreateNote(ctx context.Context, form dto.NoteForm) (*entity.Note, error)
	CreateReminder(ctx context.Context, form dto.ReminderForm) (*entity.Reminder, error)
	UpdateNote(ctx context.Context, id string, form dto.NoteForm) error
}

type CoordinatorOptions struct {
	RollbackFailedToggle bool
}

type coordinatorService struct {
	client    remote.IClient
	store     *state.Store
	guards    *guard.Families
	publisher IPublisherService
	notifier  INotifier
	confirmer IConfirmer
	logger    logger.ILogger
	opts      CoordinatorOptions
}

func NewCoordinatorService(
	client remote.IClient,
	store *state.Store,
	guards *guard.Families,
	publisher IPublisherService,
	notifier INotifier,
	confirmer IConfirmer,
	log logger.ILogger,
	opts CoordinatorOptions,
) ICoordinatorService {
	return &coordinatorService{
		client:    client,
		store:     store,
		guards:    guards,
		publisher: publisher,
		notifier:  notifier,
		confirmer: confirmer,
		logger:    log,
		opts:      opts,
	}
}

func (cs *coordinatorService) ToggleComplete(ctx context.Context, kind entity.Kind, id string, currentCompleted bool) error {
	if !kind.Completable() {
		return fmt.Errorf("%s entities cannot be completed", kind)
	}

	key := guard.Key(string(kind), id)
	if !cs.guards.Toggle.TryAcquire(key) {
		cs.logger.Debug("COORDINATOR", "Toggle already in flight, ignoring", map[string]interface{}{"key": key})
		return nil
	}
	defer cs.guards.Toggle.Release(key)

	target := !currentCompleted
	cs.store.BeginOptimistic(kind, id, target)

	err := cs.client.SetCompleted(ctx, kind, id, target)
	cs.store.EndOptimistic(kind, id)

	if err != nil {
		cs.logger.Error("COORDINATOR", "Toggle failed", map[string]interface{}{
			"kind":  kind,
			"id":    id,
			"error": err.Error(),
		})
		cs.notifier.Alert(apperror.UserMessage(err))
		if cs.opts.RollbackFailedToggle {
			cs.store.SetCompleted(kind, id, currentCompleted)
		}
	}

	// Reconcile on both outcomes; without rollback the reload is what corrects a failed flip.
	cs.publish(ctx, toggledEvent(kind), map[string]interface{}{
		events.KeyEntityId: id,
		events.KeyKind:     string(kind),
		events.KeySuccess:  err == nil,
	})
	return err
}

func (cs *coordinatorService) DeleteEntity(ctx context.Context, kind entity.Kind, id string) error {
	if _, err := kind.Resource(); err != nil {
		return err
	}

	ok, err := cs.confirmer.Confirm(ctx, deletePrompt(kind))
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return nil
	}

	key := guard.Key(string(kind), id)
	if !cs.guards.Delete.TryAcquire(key) {
		cs.logger.Debug("COORDINATOR", "Delete already in flight, ignoring", map[string]interface{}{"key": key})
		return nil
	}
	defer cs.guards.Delete.Release(key)

	if err := cs.client.Delete(ctx, kind, id); err != nil {
		cs.logger.Error("COORDINATOR", "Delete failed", map[string]interface{}{
			"kind":  kind,
			"id":    id,
			"error": err.Error(),
		})
		cs.notifier.Alert(apperror.UserMessage(err))
		return err
	}

	cs.store.Remove(kind, id)
	cs.logger.Info("COORDINATOR", "Entity deleted", map[string]interface{}{"kind": kind, "id": id})

	cs.publish(ctx, deletedEvent(kind), map[string]interface{}{
		events.KeyEntityId: id,
		events.KeyKind:     string(kind),
	})
	return nil
}

func (cs *coordinatorService) CreateNote(ctx context.Context, form dto.NoteForm) (*entity.Note, error) {
	cs.store.SetNoteDraft(form)

	form = normaliseNoteForm(form)
	if err := serverutils.ValidateRequest(form); err != nil {
		cs.notifier.Alert(apperror.UserMessage(err))
		return nil, err
	}

	note, err := cs.client.CreateNote(ctx, dto.CreateNoteRequest{
		Title:    form.Title,
		Content:  form.Content,
		Category: form.Category,
		Tags:     ParseTags(form.Tags),
	})
	if err != nil {
		cs.logger.Error("COORDINATOR", "Create note failed", map[string]interface{}{"error": err.Error()})
		cs.notifier.Alert(apperror.UserMessage(err))
		return nil, err
	}

	cs.store.SetNoteDraft(state.DefaultNoteForm())
	cs.publish(ctx, events.NoteCreated, map[string]interface{}{
		events.KeyEntityId: note.Id,
		events.KeyKind:     string(entity.KindNote),
	})
	return &note, nil
}

func (cs *coordinatorService) UpdateNote(ctx context.Context, id string, form dto.NoteForm) error {
	form = normaliseNoteForm(form)
	if err := serverutils.ValidateRequest(form); err != nil {
		cs.notifier.Alert(apperror.UserMessage(err))
		return err
	}

	err := cs.client.UpdateNote(ctx, id, dto.UpdateNoteRequest{
		Title:    form.Title,
		Content:  form.Content,
		Category: form.Category,
		Tags:     ParseTags(form.Tags),
	})
	if err != nil {
		cs.notifier.Alert(apperror.UserMessage(err))
		return err
	}

	// An edit invalidates the same caches a creation does.
	cs.publish(ctx, events.NoteCreated, map[string]interface{}{
		events.KeyEntityId: id,
		events.KeyKind:     string(entity.KindNote),
	})
	return nil
}

func (cs *coordinatorService) CreateReminder(ctx context.Context, form dto.ReminderForm) (*entity.Reminder, error) {
	cs.store.SetReminderDraft(form)

	form.Title = strings.TrimSpace(form.Title)
	form.Description = strings.TrimSpace(form.Description)
	if form.Priority == "" {
		form.Priority = string(entity.PriorityMedium)
	}
	if err := serverutils.ValidateRequest(form); err != nil {
		cs.notifier.Alert(apperror.UserMessage(err))
		return nil, err
	}

	reminder, err := cs.client.CreateReminder(ctx, dto.CreateReminderRequest{
		Title:       form.Title,
		Description: form.Description,
		Date:        form.Date.Format(time.RFC3339),
		Priority:    form.Priority,
	})
	if err != nil {
		cs.logger.Error("COORDINATOR", "Create reminder failed", map[string]interface{}{"error": err.Error()})
		cs.notifier.Alert(apperror.UserMessage(err))
		return nil, err
	}

	cs.store.SetReminderDraft(state.DefaultReminderForm())
	cs.publish(ctx, events.ReminderCreated, map[string]interface{}{
		events.KeyEntityId: reminder.Id,
		events.KeyKind:     string(entity.KindReminder),
	})
	return &reminder, nil
}

// publish never fails the mutation that caused it; the event is only a refresh hint.
func (cs *coordinatorService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if err := cs.publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		cs.logger.Warn("COORDINATOR", "Refresh hint not published", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func normaliseNoteForm(form dto.NoteForm) dto.NoteForm {
	form.Title = strings.TrimSpace(form.Title)
	form.Content = strings.TrimSpace(form.Content)
	if form.Category == "" {
		form.Category = string(entity.CategoryGeneral)
	}
	return form
}

// ParseTags splits a comma separated tag field, dropping blanks and repeats while keeping
// first-seen order.
func ParseTags(raw string) []string {
	seen := strset.New()
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen.Has(t) {
			continue
		}
		seen.Add(t)
		tags = append(tags, t)
	}
	return tags
}

func toggledEvent(kind entity.Kind) string {
	if kind == entity.KindReminder {
		return events.ReminderToggled
	}
	return events.NoteToggled
}

func deletedEvent(kind entity.Kind) string {
	switch kind {
	case entity.KindNote:
		return events.NoteDeleted
	case entity.KindReminder:
		return events.ReminderDeleted
	default:
		return events.ActivityDeleted
	}
}

var deleteNouns = map[entity.Kind]string{
	entity.KindNote:     "esta nota",
	entity.KindReminder: "este lembrete",
	entity.KindChat:     "esta conversa",
	entity.KindSearch:   "esta pesquisa",
	entity.KindCode:     "esta análise de código",
}

func deletePrompt(kind entity.Kind) string {
	return fmt.Sprintf("Tem certeza que deseja excluir %s?", deleteNouns[kind])
}
