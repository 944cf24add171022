package types

import "time"

// AuditCategory buckets domain events in the service-wide audit log.
type AuditCategory string

const (
	AuditMonitoring     AuditCategory = "monitoring"
	AuditPrivacy        AuditCategory = "privacy"
	AuditCompliance     AuditCategory = "compliance"
	AuditFormSubmission AuditCategory = "form_submission"
	AuditChat           AuditCategory = "chat"
)

// AuditLogEntry is one immutable record in the service-wide audit log,
// distinct from a project's own AuditEntry trail.
type AuditLogEntry struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	UserID      string         `json:"userId"`
	Timestamp   time.Time      `json:"timestamp"`
	Details     map[string]any `json:"details,omitempty"`
	Category    AuditCategory  `json:"category"`
}

// RecordFormRequest logs a monitoring checklist form submission.
type RecordFormRequest struct {
	FormName string         `json:"formName"`
	UserID   string         `json:"userId"`
	FormData map[string]any `json:"formData,omitempty"`
}

// RecordChatRequest logs one chat panel message.
type RecordChatRequest struct {
	Message       string `json:"message"`
	UserID        string `json:"userId"`
	IsUserMessage bool   `json:"isUserMessage"`
}
