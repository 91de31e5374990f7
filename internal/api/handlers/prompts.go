package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"callagent/internal/prompt"
)

type GenerateRequest struct {
	Message string `json:"message"`
}

// GenerateResponse carries the agent text verbatim, even when it is empty.
type GenerateResponse struct {
	Response string `json:"response"`
}

type GenerateError struct {
	Error string `json:"error"`
}

func HandleGenerate(generator PromptGenerator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err)
			return
		}

		response, err := generator.Handle(r.Context(), prompt.DefaultCallerID, req.Message)
		if err != nil {
			zap.L().Error("Prompt generator failed", zap.Error(err))
			writeErrorResponse(w, http.StatusBadGateway, "prompt generator failed", err)
			return
		}

		writeJSON(w, http.StatusOK, GenerateResponse{Response: response})
	})
}

// HandleGenerateStream serves the prompt generator chat over a websocket.
// Every text frame carries a GenerateRequest and is answered with a
// GenerateResponse, or a GenerateError when the agent fails.
func HandleGenerateStream(generator PromptGenerator, upgrader websocket.Upgrader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			zap.L().Error("Failed to upgrade connection", zap.Error(err))
			return
		}
		defer conn.Close()

		for {
			var req GenerateRequest
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					zap.L().Error("Error reading message", zap.Error(err))
				}
				return
			}

			var frame interface{}
			response, err := generator.Handle(r.Context(), prompt.DefaultCallerID, req.Message)
			if err != nil {
				zap.L().Error("Prompt generator failed", zap.Error(err))
				frame = GenerateError{Error: err.Error()}
			} else {
				frame = GenerateResponse{Response: response}
			}

			if err := conn.WriteJSON(frame); err != nil {
				zap.L().Error("Failed to write message", zap.Error(err))
				return
			}
		}
	})
}
