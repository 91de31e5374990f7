// Package calls places outbound calls through an external voice provider.
package calls

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"callagent/internal/ai"
)

// Request is what a user submits to start a call.
type Request struct {
	PhoneNumber      string
	Questions        string
	KnowledgeBaseURL string
	Prompt           string
}

// Call is the task handed to a provider.
type Call struct {
	PhoneNumber               string `json:"phone_number"`
	Task                      string `json:"task"`
	KnowledgeBase             string `json:"knowledge_base"`
	Webhook                   string `json:"webhook"`
	Record                    bool   `json:"record"`
	ReduceLatency             bool   `json:"reduce_latency"`
	AnsweringMachineDetection bool   `json:"amd"`
}

// Provider places a call and returns the provider-assigned call id. An empty
// id with a nil error means the provider answered without one.
type Provider interface {
	PlaceCall(ctx context.Context, call Call) (string, error)
}

type Result struct {
	CallID      string
	PhoneNumber string
	Questions   []string
}

type Initiator struct {
	provider     Provider
	webhookURL   string
	organization string
	logger       *zap.Logger
}

func NewInitiator(provider Provider, webhookURL, organization string, logger *zap.Logger) *Initiator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Initiator{
		provider:     provider,
		webhookURL:   webhookURL,
		organization: organization,
		logger:       logger,
	}
}

// Initiate builds the call task and submits it synchronously. There is no
// retry; a provider answer without an id surfaces as an empty CallID.
func (i *Initiator) Initiate(ctx context.Context, req Request) (Result, error) {
	questions := ParseQuestions(req.Questions)
	result := Result{PhoneNumber: req.PhoneNumber, Questions: questions}

	task, err := ai.GenerateCallTask(i.organization, req.Prompt, questions, req.KnowledgeBaseURL)
	if err != nil {
		return result, err
	}

	callID, err := i.provider.PlaceCall(ctx, Call{
		PhoneNumber:               req.PhoneNumber,
		Task:                      task,
		KnowledgeBase:             req.KnowledgeBaseURL,
		Webhook:                   i.webhookURL,
		Record:                    true,
		ReduceLatency:             true,
		AnsweringMachineDetection: true,
	})
	if err != nil {
		return result, err
	}

	if callID == "" {
		i.logger.Warn("Provider returned no call id", zap.String("phone_number", req.PhoneNumber))
	} else {
		i.logger.Info("Call initiated", zap.String("call_id", callID), zap.Int("questions", len(questions)))
	}

	result.CallID = callID
	return result, nil
}

// ParseQuestions splits newline separated questions, dropping blank lines.
func ParseQuestions(raw string) []string {
	questions := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if q := strings.TrimSpace(line); q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}
