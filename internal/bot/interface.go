package bot

import (
	"context"

	"go.mau.fi/whatsmeow/types"
)

// Messenger is the outbound surface of the messaging library. The whatsmeow
// adapter implements it for production; tests substitute a fake.
type Messenger interface {
	SendText(ctx context.Context, chat types.JID, text string) error

	// Reply sends text quoting the given message.
	Reply(ctx context.Context, text string, quoted *Incoming) error

	// SendMention sends text tagging every JID in mentions.
	SendMention(ctx context.Context, chat types.JID, text string, mentions []types.JID) error

	// React attaches an emoji reaction to the given message.
	React(ctx context.Context, msg *Incoming, emoji string) error

	// Revoke issues a delete-for-everyone request for the given message.
	Revoke(ctx context.Context, msg *Incoming) error

	// MarkRead acknowledges the message with a read receipt.
	MarkRead(ctx context.Context, msg *Incoming) error

	// SetTyping toggles the composing/paused presence indicator for chat.
	SetTyping(ctx context.Context, chat types.JID, typing bool)

	// IsGroupAdmin reports whether user is an admin of the group chat. The
	// lookup hits group metadata and is fallible; callers must treat an
	// error as "not admin".
	IsGroupAdmin(ctx context.Context, chat, user types.JID) (bool, error)

	// GroupParticipants lists the members of a group chat.
	GroupParticipants(ctx context.Context, chat types.JID) ([]types.JID, error)
}
