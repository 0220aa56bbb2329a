package state

import (
	"sync"
	"time"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/pkg/feed"
)

// Store is the single owner of client-side state for one session. Readers always receive
// copies; only the coordinator and loader services call the mutating methods.
type Store struct {
	mu sync.RWMutex

	sessionId string
	messages  []entity.Message

	notes        []entity.Note
	notesGen     uint64
	reminders    []entity.Reminder
	remindersGen uint64

	dashboard    feed.ViewModel
	dashboardGen uint64

	detail feed.Detail

	noteDraft     dto.NoteForm
	reminderDraft dto.ReminderForm

	searchResult string
	codeAnalysis string

	// optimistic completion values for ids whose toggle is still in flight
	overlay map[overlayKey]bool

	// generation at which an id was deleted, per view; reloads issued earlier must not revive it
	noteTombs     tombstones
	reminderTombs tombstones
	activityTombs tombstones

	generation uint64
}

type overlayKey struct {
	kind entity.Kind
	id   string
}

type tombstones map[overlayKey]uint64

// hides reports whether a reload tagged gen predates the deletion of kind:id.
func (t tombstones) hides(kind entity.Kind, id string, gen uint64) bool {
	deletedAt, ok := t[overlayKey{kind, id}]
	return ok && gen < deletedAt
}

// prune forgets deletions that a reload tagged gen already reflects.
func (t tombstones) prune(gen uint64) {
	for k, deletedAt := range t {
		if deletedAt <= gen {
			delete(t, k)
		}
	}
}

func NewStore() *Store {
	return &Store{
		noteDraft:     DefaultNoteForm(),
		reminderDraft: DefaultReminderForm(),
		overlay:       make(map[overlayKey]bool),
		noteTombs:     make(tombstones),
		reminderTombs: make(tombstones),
		activityTombs: make(tombstones),
	}
}

func DefaultNoteForm() dto.NoteForm {
	return dto.NoteForm{Category: string(entity.CategoryGeneral)}
}

func DefaultReminderForm() dto.ReminderForm {
	return dto.ReminderForm{Priority: string(entity.PriorityMedium)}
}

// NextGeneration hands out a monotonically increasing number to tag a reload before it is
// issued. Results are applied only if no newer reload has been applied already.
func (s *Store) NextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// --- conversation ---

func (s *Store) SessionId() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionId
}

func (s *Store) SetSessionId(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionId = id
}

func (s *Store) AppendMessage(text string, sender entity.Sender) entity.Message {
	msg := entity.Message{Text: text, Sender: sender, Timestamp: time.Now()}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return msg
}

func (s *Store) Messages() []entity.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ResetConversation starts a new chat session.
func (s *Store) ResetConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionId = ""
	s.messages = nil
}

// --- notes ---

func (s *Store) Notes() []entity.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Note, len(s.notes))
	for i, n := range s.notes {
		n.Tags = append([]string(nil), n.Tags...)
		out[i] = n
	}
	return out
}

func (s *Store) Note(id string) (entity.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.Id == id {
			n.Tags = append([]string(nil), n.Tags...)
			return n, true
		}
	}
	return entity.Note{}, false
}

// ReplaceNotes installs an authoritative list unless a newer one was already applied.
// Ids with a toggle in flight keep their optimistic completion value, and ids deleted
// after the reload was issued stay deleted.
func (s *Store) ReplaceNotes(gen uint64, notes []entity.Note) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.notesGen {
		return false
	}
	s.notesGen = gen
	s.notes = make([]entity.Note, 0, len(notes))
	for _, n := range notes {
		if !s.noteTombs.hides(entity.KindNote, n.Id, gen) {
			s.notes = append(s.notes, n)
		}
	}
	s.noteTombs.prune(gen)
	for i := range s.notes {
		if v, ok := s.overlay[overlayKey{entity.KindNote, s.notes[i].Id}]; ok {
			s.notes[i].Completed = v
		}
	}
	return true
}

// --- reminders ---

func (s *Store) Reminders() []entity.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

func (s *Store) Reminder(id string) (entity.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reminders {
		if r.Id == id {
			return r, true
		}
	}
	return entity.Reminder{}, false
}

func (s *Store) ReplaceReminders(gen uint64, reminders []entity.Reminder) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.remindersGen {
		return false
	}
	s.remindersGen = gen
	s.reminders = make([]entity.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if !s.reminderTombs.hides(entity.KindReminder, r.Id, gen) {
			s.reminders = append(s.reminders, r)
		}
	}
	s.reminderTombs.prune(gen)
	for i := range s.reminders {
		if v, ok := s.overlay[overlayKey{entity.KindReminder, s.reminders[i].Id}]; ok {
			s.reminders[i].Completed = v
		}
	}
	return true
}

// --- completion ---

// BeginOptimistic sets completed locally (collection, feed and open detail view) and pins the
// value against reloads until EndOptimistic.
func (s *Store) BeginOptimistic(kind entity.Kind, id string, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay[overlayKey{kind, id}] = completed
	s.setCompletedLocked(kind, id, completed)
}

// EndOptimistic unpins the value; the next reload decides.
func (s *Store) EndOptimistic(kind entity.Kind, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overlay, overlayKey{kind, id})
}

// SetCompleted writes the completion flag without pinning it.
func (s *Store) SetCompleted(kind entity.Kind, id string, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCompletedLocked(kind, id, completed)
}

func (s *Store) setCompletedLocked(kind entity.Kind, id string, completed bool) {
	switch kind {
	case entity.KindNote:
		for i := range s.notes {
			if s.notes[i].Id == id {
				s.notes[i].Completed = completed
			}
		}
	case entity.KindReminder:
		for i := range s.reminders {
			if s.reminders[i].Id == id {
				s.reminders[i].Completed = completed
			}
		}
	}
	if s.detail != nil && s.detail.Kind() == kind && s.detail.EntityId() == id {
		if d, ok := feed.WithCompleted(s.detail, completed); ok {
			s.detail = d
		}
	}
}

// Remove drops an entity from its collection and from the activity feed, and closes the
// detail view if it shows that entity. Reloads issued before the call will not bring it
// back. It reports whether anything was removed.
func (s *Store) Remove(kind entity.Kind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	key := overlayKey{kind, id}
	s.activityTombs[key] = s.generation

	removed := false
	switch kind {
	case entity.KindNote:
		s.noteTombs[key] = s.generation
		kept := s.notes[:0]
		for _, n := range s.notes {
			if n.Id == id {
				removed = true
				continue
			}
			kept = append(kept, n)
		}
		s.notes = kept
	case entity.KindReminder:
		s.reminderTombs[key] = s.generation
		kept := s.reminders[:0]
		for _, r := range s.reminders {
			if r.Id == id {
				removed = true
				continue
			}
			kept = append(kept, r)
		}
		s.reminders = kept
	}

	activities := make([]entity.Activity, 0, len(s.dashboard.Activities))
	for _, a := range s.dashboard.Activities {
		if a.Type == kind && a.Id == id {
			removed = true
			continue
		}
		activities = append(activities, a)
	}
	s.dashboard.Activities = activities

	if s.detail != nil && s.detail.Kind() == kind && s.detail.EntityId() == id {
		s.detail = nil
	}
	delete(s.overlay, overlayKey{kind, id})
	return removed
}

// --- dashboard ---

func (s *Store) Dashboard() feed.ViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vm := s.dashboard
	vm.Activities = make([]entity.Activity, len(s.dashboard.Activities))
	copy(vm.Activities, s.dashboard.Activities)
	return vm
}

func (s *Store) ReplaceDashboard(gen uint64, vm feed.ViewModel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.dashboardGen {
		return false
	}
	s.dashboardGen = gen
	activities := make([]entity.Activity, 0, len(vm.Activities))
	for _, a := range vm.Activities {
		if !s.activityTombs.hides(a.Type, a.Id, gen) {
			activities = append(activities, a)
		}
	}
	s.activityTombs.prune(gen)
	vm.Activities = activities
	s.dashboard = vm
	return true
}

func (s *Store) Activity(id string) (entity.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.dashboard.Activities {
		if a.Id == id {
			return a, true
		}
	}
	return entity.Activity{}, false
}

// --- detail view ---

func (s *Store) OpenDetail(d feed.Detail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = d
}

func (s *Store) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = nil
}

func (s *Store) Detail() feed.Detail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detail
}

// --- forms ---

func (s *Store) NoteDraft() dto.NoteForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.noteDraft
}

func (s *Store) SetNoteDraft(f dto.NoteForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteDraft = f
}

func (s *Store) ReminderDraft() dto.ReminderForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reminderDraft
}

func (s *Store) SetReminderDraft(f dto.ReminderForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminderDraft = f
}

// --- search and code ---

func (s *Store) SearchResult() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchResult
}

func (s *Store) SetSearchResult(r string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchResult = r
}

func (s *Store) CodeAnalysis() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.codeAnalysis
}

func (s *Store) SetCodeAnalysis(a string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codeAnalysis = a
}
