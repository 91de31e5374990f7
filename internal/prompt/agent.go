package prompt

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"callagent/internal/ai"
	"callagent/internal/llm"
)

// Model is the hosted LLM the agent converses with.
type Model interface {
	Generate(ctx context.Context, system string, history []llm.Message, text string) (string, error)
}

// LLMAgent is a prompt-generator agent bound to one caller's history.
type LLMAgent struct {
	mu        sync.Mutex
	callerID  string
	model     Model
	history   HistoryStore
	responses int
	system    string
	logger    *zap.Logger
}

// NewAgentFactory returns a factory building LLMAgents that replay the last
// responses exchanges of history on every run.
func NewAgentFactory(model Model, history HistoryStore, responses int, logger *zap.Logger) AgentFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, callerID string) (Agent, error) {
		logger.Info("Creating prompt generator session", zap.String("caller_id", callerID))
		return &LLMAgent{
			callerID:  callerID,
			model:     model,
			history:   history,
			responses: responses,
			system:    ai.GetPromptGeneratorSystemPrompt(),
			logger:    logger,
		}, nil
	}
}

func (a *LLMAgent) Run(ctx context.Context, text string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	past, err := a.history.Recent(ctx, a.callerID, a.responses*2)
	if err != nil {
		return "", fmt.Errorf("load history for %s: %w", a.callerID, err)
	}

	reply, err := a.model.Generate(ctx, a.system, past, text)
	if err != nil {
		return "", err
	}

	if err := a.history.Append(ctx, a.callerID, llm.RoleUser, text); err != nil {
		a.logger.Error("Failed to store user message", zap.String("caller_id", a.callerID), zap.Error(err))
	}
	if err := a.history.Append(ctx, a.callerID, llm.RoleModel, reply); err != nil {
		a.logger.Error("Failed to store model reply", zap.String("caller_id", a.callerID), zap.Error(err))
	}

	return reply, nil
}
