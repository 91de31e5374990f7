package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"callagent/internal/calls"
)

const maxFormMemory = 1 << 20

func HandleMakeCall(initiator CallInitiator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			writeErrorResponse(w, http.StatusBadRequest, "failed to parse form", err)
			return
		}

		req := calls.Request{
			PhoneNumber:      r.FormValue("phone_number"),
			Questions:        r.FormValue("questions"),
			KnowledgeBaseURL: r.FormValue("knowledge_base_url"),
			Prompt:           r.FormValue("prompt"),
		}

		for name, value := range map[string]string{
			"phone_number":       req.PhoneNumber,
			"questions":          req.Questions,
			"knowledge_base_url": req.KnowledgeBaseURL,
			"prompt":             req.Prompt,
		} {
			if value == "" {
				writeErrorResponse(w, http.StatusBadRequest, "missing required field "+name, nil)
				return
			}
		}

		result, err := initiator.Initiate(r.Context(), req)
		if err != nil {
			zap.L().Error("Failed to initiate call", zap.String("phone_number", req.PhoneNumber), zap.Error(err))
			writeErrorResponse(w, http.StatusBadGateway, "failed to initiate call", err)
			return
		}

		// a provider answer without an id is echoed as null
		var callID interface{}
		if result.CallID != "" {
			callID = result.CallID
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":      "Call initiated",
			"call_id":      callID,
			"phone number": result.PhoneNumber,
			"question":     result.Questions,
		})
	})
}
