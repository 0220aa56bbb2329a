package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/repository/contract"

	"github.com/google/uuid"
)

// IToolService covers search, code analysis and deletion of logged activities.
type IToolService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	AnalyzeCode(ctx context.Context, req *dto.CodeTaskRequest) (*dto.CodeTaskResponse, error)
	DeleteActivity(ctx context.Context, kind entity.Kind, id string) error
}

type toolService struct {
	notes      contract.NoteRepository
	activities contract.ActivityRepository
	now        func() time.Time
}

func NewToolService(notes contract.NoteRepository, activities contract.ActivityRepository) IToolService {
	return &toolService{notes: notes, activities: activities, now: time.Now}
}

func (s *toolService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	searchType := req.Type
	if searchType == "" {
		searchType = "general"
	}

	notes, err := s.notes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(req.Query)
	var b strings.Builder
	fmt.Fprintf(&b, "Resultados para \"%s\" (%s):", req.Query, searchType)
	matches := 0
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), query) || strings.Contains(strings.ToLower(n.Content), query) {
			fmt.Fprintf(&b, "\n- %s", n.Title)
			matches++
		}
	}
	if matches == 0 {
		b.WriteString("\nNenhuma nota relacionada encontrada.")
	}
	results := b.String()

	data, _ := json.Marshal(map[string]string{"query": req.Query, "results": results})
	err = s.activities.Append(ctx, entity.Activity{
		Id:          uuid.NewString(),
		Type:        entity.KindSearch,
		Icon:        "🔍",
		Title:       truncate(req.Query, 60),
		Description: fmt.Sprintf("%d resultado(s)", matches),
		Timestamp:   entity.NewTimestamp(s.now()),
		Data:        data,
	})
	if err != nil {
		return nil, err
	}

	return &dto.SearchResponse{Query: req.Query, Results: results, Type: searchType}, nil
}

var taskVerbs = map[string]string{
	"analyze": "Análise",
	"explain": "Explicação",
	"improve": "Sugestões de melhoria",
}

func (s *toolService) AnalyzeCode(ctx context.Context, req *dto.CodeTaskRequest) (*dto.CodeTaskResponse, error) {
	language, task := req.Language, req.Task
	if language == "" {
		language = "python"
	}
	if _, ok := taskVerbs[task]; !ok {
		task = "analyze"
	}

	lines := strings.Count(strings.TrimRight(req.Code, "\n"), "\n") + 1
	analysis := fmt.Sprintf("%s do código %s: %d linha(s), %d caractere(s).",
		taskVerbs[task], language, lines, len([]rune(req.Code)))

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("%s (%s)", taskVerbs[task], language)
	}
	data, _ := json.Marshal(map[string]string{
		"description": description,
		"language":    language,
		"code":        req.Code,
		"analysis":    analysis,
	})
	err := s.activities.Append(ctx, entity.Activity{
		Id:          uuid.NewString(),
		Type:        entity.KindCode,
		Icon:        "💻",
		Title:       description,
		Description: truncate(analysis, 120),
		Timestamp:   entity.NewTimestamp(s.now()),
		Data:        data,
	})
	if err != nil {
		return nil, err
	}

	return &dto.CodeTaskResponse{Code: req.Code, Language: language, Task: task, Analysis: analysis}, nil
}

func (s *toolService) DeleteActivity(ctx context.Context, kind entity.Kind, id string) error {
	return mapNotFound(s.activities.Delete(ctx, kind, id), "Activity")
}
