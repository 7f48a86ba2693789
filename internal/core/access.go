package core

// Decision is the outcome of evaluating a command's access flags against the
// caller. Denials are expected control-flow results, not errors.
type Decision int

const (
	Allow Decision = iota
	DenyOwner
	DenyAdmin
	DenyPremium
	DenyGroupOnly
	DenyPrivateOnly
)

// denialMessages maps each deny outcome to its fixed user-facing message.
var denialMessages = map[Decision]string{
	DenyOwner:       "🔒 This command can only be used by my owner.",
	DenyAdmin:       "🛡️ This command can only be used by group admins.",
	DenyPremium:     "💎 This command is for premium users only.",
	DenyGroupOnly:   "👥 This command only works in group chats.",
	DenyPrivateOnly: "💬 This command only works in private chat.",
}

// Message returns the user-facing text for a deny decision, empty for Allow.
func (d Decision) Message() string {
	return denialMessages[d]
}

// Caller is the minimal view of the sender the evaluator needs. IsAdmin is a
// live group-metadata lookup wrapped by the dispatcher; it must already
// treat lookup failures as "not admin".
type Caller struct {
	IsOwner   bool
	IsPremium bool
	IsGroup   bool
	IsAdmin   func() bool
}

// Evaluate decides whether the caller may run cmd. The check order is fixed
// (owner, admin, premium, group-only, private-only) and the first failing
// flag wins; later flags are never consulted. A descriptor carrying both
// GroupOnly and PrivateOnly therefore denies everywhere.
func Evaluate(cmd *Command, caller *Caller) Decision {
	if cmd.OwnerOnly && !caller.IsOwner {
		return DenyOwner
	}
	if cmd.AdminOnly {
		if !caller.IsGroup || caller.IsAdmin == nil || !caller.IsAdmin() {
			return DenyAdmin
		}
	}
	if cmd.Premium && !caller.IsPremium {
		return DenyPremium
	}
	if cmd.GroupOnly && !caller.IsGroup {
		return DenyGroupOnly
	}
	if cmd.PrivateOnly && caller.IsGroup {
		return DenyPrivateOnly
	}
	return Allow
}
