package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"callagent/internal/conversation"
	"callagent/internal/export"
)

type WebhookResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ExcelFile string `json:"excel_file,omitempty"`
}

// HandleWebhook ingests the provider's end-of-call payload. The store is
// updated before the export is written; a failed export leaves the stored
// record in place.
func HandleWebhook(store conversation.Store, exporter *export.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var record conversation.CallRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err)
			return
		}

		if record.CallID == "" {
			writeJSON(w, http.StatusBadRequest, WebhookResponse{
				Status:  "error",
				Message: "No call_id provided",
			})
			return
		}

		if err := store.Save(r.Context(), &record); err != nil {
			zap.L().Error("Failed to store conversation", zap.String("call_id", record.CallID), zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, "failed to store conversation", err)
			return
		}

		filename, err := exporter.Write(&record)
		if err != nil {
			zap.L().Error("Failed to export conversation", zap.String("call_id", record.CallID), zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, "failed to export conversation", err)
			return
		}

		zap.L().Info("Conversation saved",
			zap.String("call_id", record.CallID),
			zap.Int("transcripts", len(record.Transcripts)),
			zap.String("excel_file", filename),
		)

		writeJSON(w, http.StatusOK, WebhookResponse{
			Status:    "received",
			Message:   fmt.Sprintf("Conversation saved for call_id: %s", record.CallID),
			ExcelFile: filename,
		})
	})
}
