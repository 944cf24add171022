package audit

import (
	"testing"

	"github.com/oversightlabs/approval-service/types"
)

func TestRecord_AppendsAndReturnsEntry(t *testing.T) {
	r := NewRecorder(nil)

	entry := r.Record(types.AuditCompliance, "compliance_check_performed", "Compliance check performed: gdpr - passed", "3", map[string]any{"checkType": "gdpr"})

	if entry.ID == "" {
		t.Error("Expected entry to get an id")
	}
	if entry.Category != types.AuditCompliance {
		t.Errorf("Expected compliance category, got %q", entry.Category)
	}

	all := r.All()
	if len(all) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(all))
	}
	if all[0].ID != entry.ID {
		t.Error("Expected All to contain the recorded entry")
	}
}

func TestByCategoryAndUser(t *testing.T) {
	r := NewRecorder(nil)
	r.Record(types.AuditChat, "chat_message_sent", "User sent chat message", "2", nil)
	r.Record(types.AuditChat, "chat_message_received", "Copilot responded to user", "2", nil)
	r.Record(types.AuditMonitoring, "stage_advanced", "Project advanced to Legal Review", "3", nil)

	if got := len(r.ByCategory(types.AuditChat)); got != 2 {
		t.Errorf("Expected 2 chat entries, got %d", got)
	}
	if got := len(r.ByUser("3")); got != 1 {
		t.Errorf("Expected 1 entry for user 3, got %d", got)
	}
	if got := len(r.ByUser("nobody")); got != 0 {
		t.Errorf("Expected 0 entries for unknown user, got %d", got)
	}
}

func TestRecent_NewestFirstWithLimit(t *testing.T) {
	r := NewRecorder(nil)
	first := r.Record(types.AuditMonitoring, "a", "first", "1", nil)
	second := r.Record(types.AuditMonitoring, "b", "second", "1", nil)
	third := r.Record(types.AuditMonitoring, "c", "third", "1", nil)

	recent := r.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(recent))
	}
	if recent[0].ID != third.ID {
		t.Errorf("Expected newest entry first, got action %q", recent[0].Action)
	}
	if recent[1].ID != second.ID {
		t.Errorf("Expected second-newest entry next, got action %q", recent[1].Action)
	}
	_ = first
}

func TestAll_ReturnsCopy(t *testing.T) {
	r := NewRecorder(nil)
	r.Record(types.AuditPrivacy, "privacy_checkpoint_completed", "Privacy checkpoint completed", "4", nil)

	all := r.All()
	all[0].Action = "mutated"

	if r.All()[0].Action == "mutated" {
		t.Error("Expected All to return a defensive copy")
	}
}
