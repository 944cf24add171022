package utils

import (
	"math/rand"
)

// CannedChatReply returns a canned compliance-copilot response for the
// chat panel. Replies are simulated; there is no model behind them.
func CannedChatReply() string {
	phrases := []string{
		"I've logged that in the compliance trail. Anything else on this project?",
		"Noted. Make sure the required evidence for the current stage is verified before advancing.",
		"You can check the dashboard for the per-stage breakdown of open projects.",
		"That stage requires sign-off from the listed approvers before a strict advance will pass.",
		"Recorded. Evidence items stay editable until someone verifies them.",
		"Consider attaching a risk assessment before requesting legal review.",
	}
	return phrases[rand.Intn(len(phrases))]
}
