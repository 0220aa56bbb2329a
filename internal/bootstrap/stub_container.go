package bootstrap

import (
	"ai-assistant-client/internal/backend"
	"ai-assistant-client/internal/config"
	"ai-assistant-client/internal/controller"
	"ai-assistant-client/internal/repository/memory"
)

// StubContainer wires the in-memory backend used by cmd/stub-api and end-to-end tests.
type StubContainer struct {
	NoteController      controller.INoteController
	ReminderController  controller.IReminderController
	AssistantController controller.IAssistantController
}

func NewStubContainer(cfg *config.Config) *StubContainer {
	// 1. Repositories
	noteRepo := memory.NewNoteRepository()
	reminderRepo := memory.NewReminderRepository()
	activityRepo := memory.NewActivityRepository()
	sessionRepo := memory.NewSessionRepository()

	// 2. Services
	noteService := backend.NewNoteService(noteRepo)
	reminderService := backend.NewReminderService(reminderRepo)
	chatService := backend.NewChatService(sessionRepo, activityRepo, noteService, reminderService, cfg.Stub.StructuredEffects)
	toolService := backend.NewToolService(noteRepo, activityRepo)
	dashboardService := backend.NewDashboardService(noteRepo, reminderRepo, activityRepo)

	// 3. Controllers
	return &StubContainer{
		NoteController:      controller.NewNoteController(noteService),
		ReminderController:  controller.NewReminderController(reminderService),
		AssistantController: controller.NewAssistantController(chatService, toolService, dashboardService),
	}
}
