// Package prompt runs the conversational prompt generator. Each caller gets
// one long-lived agent whose history is kept by a HistoryStore.
package prompt

import (
	"context"
	"strings"
	"sync"

	"callagent/internal/ai"
)

const (
	// TriggerPhrase, matched case-insensitively, asks for the final prompt.
	TriggerPhrase = "generate prompt"

	// DefaultCallerID is the single caller this deployment serves.
	DefaultCallerID = "1"
)

type Agent interface {
	Run(ctx context.Context, text string) (string, error)
}

// AgentFactory creates the agent for a caller on its first message.
type AgentFactory func(ctx context.Context, callerID string) (Agent, error)

// Sessions holds at most one agent per caller id for the process lifetime.
type Sessions struct {
	mu      sync.RWMutex
	agents  map[string]Agent
	factory AgentFactory
}

func NewSessions(factory AgentFactory) *Sessions {
	return &Sessions{
		agents:  make(map[string]Agent),
		factory: factory,
	}
}

// Get returns the caller's agent, creating it if this is the caller's first
// message. A failed creation leaves the caller uninitialized.
func (s *Sessions) Get(ctx context.Context, callerID string) (Agent, error) {
	s.mu.RLock()
	agent, ok := s.agents[callerID]
	s.mu.RUnlock()
	if ok {
		return agent, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if agent, ok := s.agents[callerID]; ok {
		return agent, nil
	}

	agent, err := s.factory(ctx, callerID)
	if err != nil {
		return nil, err
	}
	s.agents[callerID] = agent
	return agent, nil
}

// Len reports how many callers have an active session.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}

type Generator struct {
	sessions *Sessions
}

func NewGenerator(sessions *Sessions) *Generator {
	return &Generator{sessions: sessions}
}

// Handle forwards a user message to the caller's agent and returns the reply
// verbatim. The trigger phrase is replaced by the final prompt directive.
func (g *Generator) Handle(ctx context.Context, callerID, message string) (string, error) {
	agent, err := g.sessions.Get(ctx, callerID)
	if err != nil {
		return "", err
	}

	text := message
	if IsTrigger(message) {
		text = ai.FinalPromptDirective
	}
	return agent.Run(ctx, text)
}

func IsTrigger(message string) bool {
	return strings.EqualFold(message, TriggerPhrase)
}
