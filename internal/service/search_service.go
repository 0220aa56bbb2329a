package service

import (
	"context"
	"strings"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/remote"
	"ai-assistant-client/internal/state"
	"ai-assistant-client/pkg/events"
)

const searchErrorResult = "Erro na pesquisa. Tente novamente."

type ISearchService interface {
	Search(ctx context.Context, query, searchType string) (string, error)
}

type searchService struct {
	client    remote.IClient
	store     *state.Store
	publisher IPublisherService
	logger    logger.ILogger
}

func NewSearchService(client remote.IClient, store *state.Store, publisher IPublisherService, log logger.ILogger) ISearchService {
	return &searchService{
		client:    client,
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

func (ss *searchService) Search(ctx context.Context, query, searchType string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", apperror.NewValidationError(apperror.FieldError{Field: "query", Rule: "required"})
	}
	if searchType == "" {
		searchType = "general"
	}

	res, err := ss.client.Search(ctx, dto.SearchRequest{Query: query, Type: searchType})
	if err != nil {
		ss.logger.Error("SEARCH", "Search failed", map[string]interface{}{"error": err.Error()})
		ss.store.SetSearchResult(searchErrorResult)
		return searchErrorResult, err
	}

	ss.store.SetSearchResult(res.Results)
	if err := ss.publisher.Publish(ctx, events.New(events.SearchCompleted, map[string]interface{}{
		events.KeyKind: string(entity.KindSearch),
	})); err != nil {
		ss.logger.Warn("SEARCH", "Refresh hint not published", map[string]interface{}{"error": err.Error()})
	}
	return res.Results, nil
}
