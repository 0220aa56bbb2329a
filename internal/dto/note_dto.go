package dto

// NoteForm holds the values of the note creation form as typed by the user.
// Tags is the raw comma separated input.
type NoteForm struct {
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	Category string `validate:"omitempty,oneof=general work personal study"`
	Tags     string
}

type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type UpdateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// NoteFilter narrows GET /api/notes.
type NoteFilter struct {
	Category string
	Tag      string
}

type MessageResponse struct {
	Message string `json:"message"`
}
