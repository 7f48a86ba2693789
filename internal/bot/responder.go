package bot

import (
	"context"

	"go.mau.fi/whatsmeow/types"
)

// Responder scopes outbound replies to one command invocation. When a
// signature is enabled it is appended to every text this Responder sends,
// without touching sends made elsewhere.
type Responder struct {
	m         Messenger
	chat      types.JID
	signature string
}

// NewResponder builds a Responder for chat. signature may be empty.
func NewResponder(m Messenger, chat types.JID, signature string) *Responder {
	return &Responder{m: m, chat: chat, signature: signature}
}

// Text sends a plain text message to the chat.
func (r *Responder) Text(ctx context.Context, text string) error {
	return r.m.SendText(ctx, r.chat, r.decorate(text))
}

// Reply sends text quoting the given message.
func (r *Responder) Reply(ctx context.Context, text string, quoted *Incoming) error {
	return r.m.Reply(ctx, r.decorate(text), quoted)
}

// Mention sends text tagging the given JIDs.
func (r *Responder) Mention(ctx context.Context, text string, mentions []types.JID) error {
	return r.m.SendMention(ctx, r.chat, r.decorate(text), mentions)
}

func (r *Responder) decorate(text string) string {
	if r.signature == "" {
		return text
	}
	return text + "\n\n" + r.signature
}
