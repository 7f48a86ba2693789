package whatsapp

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"wabot/internal/bot"
	"wabot/internal/core"
	"wabot/internal/moderation"
	"wabot/internal/storage"
)

// reactionPalette holds the acknowledgment emojis picked pseudo-randomly
// after a successful command run.
var reactionPalette = []string{"✅", "👍", "🔥", "⚡", "💯", "🎯", "✨"}

// statusPalette is used for auto-reacting to viewed stories.
var statusPalette = []string{"💚", "❤️", "🔥", "😍", "💯"}

// process runs the full pipeline for one inbound message. Any panic is
// recovered here so a misbehaving command or filter never takes down the
// event loop; handling is serialized so messages complete in arrival order.
func (b *Bot) process(ctx context.Context, msg *bot.Incoming) {
	if msg.FromMe {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] Panic handling message %s from %s: %v", msg.ID, msg.Sender, r)
			if b.cfg.AutoTyping {
				b.messenger.SetTyping(ctx, msg.Chat, false)
			}
		}
	}()

	// Status stories and channel posts are terminal: never commands.
	if msg.IsStatus {
		b.handleStatus(ctx, msg)
		return
	}
	if msg.IsNewsletter {
		b.handleNewsletter(ctx, msg)
		return
	}

	if b.cfg.AutoTyping {
		b.messenger.SetTyping(ctx, msg.Chat, true)
		defer b.messenger.SetTyping(ctx, msg.Chat, false)
	}

	if b.cfg.AutoRead {
		if err := b.messenger.MarkRead(ctx, msg); err != nil {
			log.Printf("[WARN] Mark read failed for %s: %v", msg.ID, err)
		}
	}

	// One admin lookup serves both moderation and access control.
	isAdmin := b.memoizedAdminCheck(ctx, msg)

	if msg.IsGroup && b.moderate(ctx, msg, isAdmin) {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, b.cfg.Prefix) {
		// Non-command replies may belong to an active game.
		b.sessions.HandleReply(ctx, msg)
		return
	}

	b.dispatch(ctx, msg, strings.TrimPrefix(text, b.cfg.Prefix), isAdmin)
}

func (b *Bot) handleStatus(ctx context.Context, msg *bot.Incoming) {
	if !b.cfg.AutoViewStatus {
		return
	}
	if err := b.messenger.MarkRead(ctx, msg); err != nil {
		log.Printf("[WARN] Status view failed: %v", err)
	}
	if b.cfg.StatusReact {
		emoji := statusPalette[rand.Intn(len(statusPalette))]
		if err := b.messenger.React(ctx, msg, emoji); err != nil {
			log.Printf("[WARN] Status react failed: %v", err)
		}
	}
}

func (b *Bot) handleNewsletter(ctx context.Context, msg *bot.Incoming) {
	if !b.cfg.NewsletterReact {
		return
	}
	emoji := reactionPalette[rand.Intn(len(reactionPalette))]
	if err := b.messenger.React(ctx, msg, emoji); err != nil {
		log.Printf("[WARN] Newsletter react failed: %v", err)
	}
}

// moderate runs the filter chain for group chats with settings. Returns true
// when a filter fired and the message is consumed. Admins are exempt.
func (b *Bot) moderate(ctx context.Context, msg *bot.Incoming, isAdmin func() bool) bool {
	set := b.storage.GroupSettings(msg.Chat.String())
	if !set.AnyActive() {
		return false
	}
	if isAdmin() {
		return false
	}

	verdict := moderation.Inspect(set, msg, b.cfg.Prefix)
	if verdict == nil {
		return false
	}

	log.Printf("[INFO] Filter %s fired in %s on message from %s", verdict.Filter, msg.Chat, msg.Sender)

	// Warn first, quoting the offending message, then request deletion.
	if err := b.messenger.Reply(ctx, verdict.Warning, msg); err != nil {
		log.Printf("[WARN] Moderation warning failed: %v", err)
	}
	if !verdict.WarnOnly {
		if err := b.messenger.Revoke(ctx, msg); err != nil {
			log.Printf("[WARN] Delete-for-everyone failed for %s: %v", msg.ID, err)
		}
	}
	return true
}

// dispatch resolves and runs a prefixed command.
func (b *Bot) dispatch(ctx context.Context, msg *bot.Incoming, body string, isAdmin func() bool) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	cmd, ok := b.registry.Resolve(name)
	if !ok {
		log.Printf("[INFO] Unknown command %q from %s", name, msg.Sender)
		return
	}

	isOwner := msg.Sender.User == b.cfg.OwnerNumber
	caller := &core.Caller{
		IsOwner:   isOwner,
		IsPremium: isOwner || b.premium.IsPremium(msg.Sender.User),
		IsGroup:   msg.IsGroup,
		IsAdmin:   isAdmin,
	}

	signature := ""
	if b.cfg.SignatureEnabled {
		signature = b.cfg.SignatureText
	}
	responder := bot.NewResponder(b.messenger, msg.Chat, signature)

	if decision := core.Evaluate(cmd, caller); decision != core.Allow {
		if err := responder.Reply(ctx, decision.Message(), msg); err != nil {
			log.Printf("[WARN] Denial reply failed: %v", err)
		}
		return
	}

	if ready, remaining := b.cooldowns.Ready(cmd.Name+"|"+msg.Chat.String(), cmd.Cooldown); !ready {
		_ = responder.Reply(ctx, "⏳ Slow down, try again in "+remaining.Round(time.Second).String()+".", msg)
		return
	}

	cctx := &core.Context{
		Ctx:       ctx,
		Msg:       msg,
		Args:      args,
		Prefix:    b.cfg.Prefix,
		IsGroup:   msg.IsGroup,
		IsOwner:   caller.IsOwner,
		IsPremium: caller.IsPremium,
		IsAdmin:   isAdmin,
		Responder: responder,
		Messenger: b.messenger,
		Registry:  b.registry,
		Storage:   b.storage,
		Sessions:  b.sessions,
		Premium:   b.premium,
		Config:    b.cfg,
	}

	if err := cmd.Execute(cctx); err != nil {
		log.Printf("[ERR] Command %s failed: %v", cmd.Name, err)
		_ = responder.Reply(ctx, "😵 Something went wrong running that command. Try again later.", msg)
		return
	}

	// Acknowledgment reaction; failures are irrelevant.
	emoji := reactionPalette[rand.Intn(len(reactionPalette))]
	if err := b.messenger.React(ctx, msg, emoji); err != nil {
		log.Printf("[WARN] Ack reaction failed: %v", err)
	}

	if err := b.storage.AppendCommandToHistory(msg.Chat.String(), storage.CommandHistoryRecord{
		ChatID:   msg.Chat.String(),
		Sender:   msg.Sender.User,
		PushName: msg.PushName,
		Command:  cmd.Name,
		Param:    strings.Join(args, " "),
		Datetime: time.Now(),
	}); err != nil {
		log.Printf("[WARN] Failed to log command %s: %v", cmd.Name, err)
	}
}

// memoizedAdminCheck resolves group-admin status at most once per message.
// Lookup errors count as "not admin". Always false outside groups.
func (b *Bot) memoizedAdminCheck(ctx context.Context, msg *bot.Incoming) func() bool {
	var (
		resolved bool
		admin    bool
	)
	return func() bool {
		if resolved {
			return admin
		}
		resolved = true
		if !msg.IsGroup {
			return false
		}
		ok, err := b.messenger.IsGroupAdmin(ctx, msg.Chat, msg.Sender)
		if err != nil {
			log.Printf("[WARN] Admin lookup failed in %s: %v", msg.Chat, err)
			return false
		}
		admin = ok
		return admin
	}
}
