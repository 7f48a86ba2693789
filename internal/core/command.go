package core

import (
	"context"
	"time"

	"wabot/internal/bot"
	"wabot/internal/config"
	"wabot/internal/premium"
	"wabot/internal/session"
	"wabot/internal/storage"
)

// Command is the static declaration of one bot command. Immutable after the
// registry is built; owned exclusively by the Registry.
type Command struct {
	Name        string
	Aliases     []string
	Category    string
	Description string
	Usage       string // argument hint shown in usage errors, e.g. "<city>"

	OwnerOnly   bool
	AdminOnly   bool
	Premium     bool
	GroupOnly   bool
	PrivateOnly bool

	// Cooldown is the minimum interval between invocations per chat.
	// Zero disables the gate.
	Cooldown time.Duration

	Execute func(ctx *Context) error
}

// Context is built per invocation and handed to Execute. Not retained.
type Context struct {
	Ctx  context.Context
	Msg  *bot.Incoming
	Args []string

	Prefix    string
	IsGroup   bool
	IsOwner   bool
	IsPremium bool

	// IsAdmin resolves group-admin status for the sender, memoized for the
	// whole handling of this message. Always false in private chats.
	IsAdmin func() bool

	Responder *bot.Responder
	Messenger bot.Messenger
	Registry  *Registry
	Storage   *storage.Storage
	Sessions  *session.Store
	Premium   *premium.Cache
	Config    *config.Config
}

// Reply sends text quoting the triggering message.
func (c *Context) Reply(text string) error {
	return c.Responder.Reply(c.Ctx, text, c.Msg)
}

// Send sends text to the chat without quoting.
func (c *Context) Send(text string) error {
	return c.Responder.Text(c.Ctx, text)
}
