package sanction

import (
	"fmt"

	"sentinel-bot/model"
	"sentinel-bot/permission"
)

// ResponseKind discriminates the transport-neutral workflow outcomes.
type ResponseKind int

const (
	ResponseMessage ResponseKind = iota
	ResponseModal
)

// Response is the outcome of one workflow turn. The interaction layer
// renders it into platform output.
type Response struct {
	Kind      ResponseKind
	Content   string
	Ephemeral bool
	Modal     *ModalPrompt
}

// ModalPrompt asks the invoking user for a reason before enforcement. The
// custom id doubles as the pending-sanction correlation key.
type ModalPrompt struct {
	CustomID      string
	Title         string
	RequireReason bool
}

func ephemeral(content string) *Response {
	return &Response{Kind: ResponseMessage, Content: content, Ephemeral: true}
}

const expiredMessage = "⌛ This action has expired. Please run the command again."

func denialMessage(decision permission.Decision, cmd *command) string {
	switch decision {
	case permission.DenyTargetOwner:
		return "❌ The server owner cannot be sanctioned."
	case permission.DenyBotMissingPermission:
		return fmt.Sprintf("❌ I am missing the permissions needed to %s members.", cmd.kind)
	case permission.DenyAuthorHierarchy:
		return fmt.Sprintf("❌ You cannot %s %s: their highest role is at or above yours.", cmd.kind, cmd.target.Username)
	case permission.DenyBotHierarchy:
		return fmt.Sprintf("❌ I cannot %s %s: my highest role is not above theirs.", cmd.kind, cmd.target.Username)
	}
	return "❌ This action is not allowed."
}

func confirmationMessage(req *model.SanctionRequest) *Response {
	content := fmt.Sprintf("✅ %s <@%s>.", pastTense(req.Kind), req.TargetID)
	if req.Reason != "" {
		content = fmt.Sprintf("✅ %s <@%s>. Reason: %s", pastTense(req.Kind), req.TargetID, req.Reason)
	}
	return ephemeral(content)
}

func enforcementFailedMessage(req *model.SanctionRequest) *Response {
	return ephemeral(fmt.Sprintf("❌ Failed to %s %s: the action was rejected by Discord.", req.Kind, req.TargetUsername))
}

func pastTense(kind model.SanctionKind) string {
	switch kind {
	case model.SanctionKick:
		return "Kicked"
	case model.SanctionBan:
		return "Banned"
	case model.SanctionMute:
		return "Muted"
	case model.SanctionWarn:
		return "Warned"
	}
	return "Sanctioned"
}

// modalTitle mirrors the command verb, with the username clipped so the
// title stays within the platform limit.
func modalTitle(kind model.SanctionKind, username string) string {
	if len(username) > 15 {
		username = username[:15]
	}
	switch kind {
	case model.SanctionKick:
		return "Kick " + username
	case model.SanctionBan:
		return "Ban " + username
	case model.SanctionMute:
		return "Mute " + username
	default:
		return "Warn " + username
	}
}
