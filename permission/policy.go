package permission

import "sentinel-bot/model"

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	DenyTargetOwner
	DenyBotMissingPermission
	DenyAuthorHierarchy
	DenyBotHierarchy
)

// Allowed reports whether the decision permits the action.
func (d Decision) Allowed() bool {
	return d == Allow
}

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyTargetOwner:
		return "deny:target_owner"
	case DenyBotMissingPermission:
		return "deny:bot_missing_permission"
	case DenyAuthorHierarchy:
		return "deny:author_hierarchy"
	case DenyBotHierarchy:
		return "deny:bot_hierarchy"
	}
	return "unknown"
}

// Authorize runs the moderation access checks and returns the first denial,
// or Allow. The evaluation order is part of the contract: owner status
// short-circuits before any permission bit is read, and the bot's own
// capability is checked before hierarchy. The author and the bot must both
// rank strictly above the target; equal rank is a violation.
func Authorize(author, target, bot model.Actor, required int64) Decision {
	if target.IsOwner {
		return DenyTargetOwner
	}
	if !bot.HasPermissions(required) {
		return DenyBotMissingPermission
	}
	if target.HierarchyRank >= author.HierarchyRank {
		return DenyAuthorHierarchy
	}
	if target.HierarchyRank >= bot.HierarchyRank {
		return DenyBotHierarchy
	}
	return Allow
}
