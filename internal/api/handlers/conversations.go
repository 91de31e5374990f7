package handlers

import (
	"errors"
	"net/http"

	"callagent/internal/conversation"
)

// HandleGetConversation answers a lookup miss with a JSON error body and a
// 200 status; only store failures are HTTP errors.
func HandleGetConversation(store conversation.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record, err := store.Get(r.Context(), r.PathValue("call_id"))
		if errors.Is(err, conversation.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]string{"error": "Conversation not found"})
			return
		}
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "failed to load conversation", err)
			return
		}

		writeJSON(w, http.StatusOK, record)
	})
}
