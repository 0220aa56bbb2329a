package dto

type CodeTaskRequest struct {
	Code        string `json:"code" validate:"required"`
	Language    string `json:"language"`
	Task        string `json:"task" validate:"omitempty,oneof=analyze explain improve"`
	Description string `json:"description"`
}

type CodeTaskResponse struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Task     string `json:"task"`
	Analysis string `json:"analysis"`
}
