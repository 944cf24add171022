package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/oversightlabs/approval-service/internal/audit"
	"github.com/oversightlabs/approval-service/types"
	"github.com/oversightlabs/approval-service/utils"
)

// AuditLogHandler queries the service-wide audit log. Supports
// category, user and limit query parameters; newest entries first.
func AuditLogHandler(recorder *audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var entries []types.AuditLogEntry
		switch {
		case q.Get("category") != "":
			entries = recorder.ByCategory(types.AuditCategory(q.Get("category")))
		case q.Get("user") != "":
			entries = recorder.ByUser(q.Get("user"))
		default:
			entries = recorder.All()
		}

		if raw := q.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			if limit < len(entries) {
				entries = entries[len(entries)-limit:]
			}
		}

		// Newest first for the activity feed.
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}

		writeJSON(w, http.StatusOK, entries)
	}
}

// RecordFormHandler logs a monitoring checklist form submission.
func RecordFormHandler(recorder *audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RecordFormRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.FormName == "" || req.UserID == "" {
			http.Error(w, "formName and userId are required", http.StatusBadRequest)
			return
		}

		entry := recorder.Record(types.AuditFormSubmission, "form_submitted",
			"Form submitted: "+req.FormName, req.UserID, req.FormData)

		writeJSON(w, http.StatusCreated, entry)
	}
}

// RecordChatHandler logs one chat panel message and, for user messages,
// returns a canned copilot reply alongside the stored entry.
func RecordChatHandler(recorder *audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RecordChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Message == "" || req.UserID == "" {
			http.Error(w, "message and userId are required", http.StatusBadRequest)
			return
		}

		entry := recorder.Record(types.AuditChat, "chat_message",
			req.Message, req.UserID, map[string]any{
				"isUserMessage": req.IsUserMessage,
			})

		body := map[string]any{"entry": entry}
		if req.IsUserMessage {
			reply := utils.CannedChatReply()
			recorder.Record(types.AuditChat, "chat_message", reply, "system",
				map[string]any{"isUserMessage": false})
			body["reply"] = reply
		}

		writeJSON(w, http.StatusCreated, body)
	}
}
