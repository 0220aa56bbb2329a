package service

import (
	"context"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/pkg/serverutils"
	"ai-assistant-client/internal/remote"
	"ai-assistant-client/internal/state"
	"ai-assistant-client/pkg/events"
)

const codeErrorResult = "Erro na análise. Tente novamente."

type ICodeService interface {
	Analyze(ctx context.Context, req dto.CodeTaskRequest) (string, error)
}

type codeService struct {
	client    remote.IClient
	store     *state.Store
	publisher IPublisherService
	logger    logger.ILogger
}

func NewCodeService(client remote.IClient, store *state.Store, publisher IPublisherService, log logger.ILogger) ICodeService {
	return &codeService{
		client:    client,
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

func (cs *codeService) Analyze(ctx context.Context, req dto.CodeTaskRequest) (string, error) {
	if req.Language == "" {
		req.Language = "python"
	}
	if req.Task == "" {
		req.Task = "analyze"
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return "", err
	}

	res, err := cs.client.AnalyzeCode(ctx, req)
	if err != nil {
		cs.logger.Error("CODE", "Code task failed", map[string]interface{}{
			"task":  req.Task,
			"error": err.Error(),
		})
		cs.store.SetCodeAnalysis(codeErrorResult)
		return codeErrorResult, err
	}

	cs.store.SetCodeAnalysis(res.Analysis)
	if err := cs.publisher.Publish(ctx, events.New(events.CodeAnalyzed, map[string]interface{}{
		events.KeyKind: string(entity.KindCode),
	})); err != nil {
		cs.logger.Warn("CODE", "Refresh hint not published", map[string]interface{}{"error": err.Error()})
	}
	return res.Analysis, nil
}
