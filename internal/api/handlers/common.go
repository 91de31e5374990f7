package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"callagent/internal/calls"
)

// CallInitiator places outbound calls.
type CallInitiator interface {
	Initiate(ctx context.Context, req calls.Request) (calls.Result, error)
}

// PromptGenerator answers prompt-generator chat messages for a caller.
type PromptGenerator interface {
	Handle(ctx context.Context, callerID, message string) (string, error)
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, status int, message string, err error) {
	text := message
	if err != nil {
		text = fmt.Sprintf("%s: %v", message, err)
	}
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{
		Error: text,
	})
}

func render(w http.ResponseWriter, tmpl *template.Template, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		zap.L().Error("Failed to render page", zap.String("template", name), zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
