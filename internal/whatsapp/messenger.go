package whatsapp

import (
	"context"
	"time"

	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"

	"wabot/internal/bot"
)

// waMessenger adapts a whatsmeow client to the bot.Messenger seam.
type waMessenger struct {
	client *whatsmeow.Client
}

func newMessenger(client *whatsmeow.Client) *waMessenger {
	return &waMessenger{client: client}
}

func (w *waMessenger) SendText(ctx context.Context, chat types.JID, text string) error {
	_, err := w.client.SendMessage(ctx, chat, &waProto.Message{
		Conversation: proto.String(text),
	})
	return err
}

func (w *waMessenger) Reply(ctx context.Context, text string, quoted *bot.Incoming) error {
	_, err := w.client.SendMessage(ctx, quoted.Chat, &waProto.Message{
		ExtendedTextMessage: &waProto.ExtendedTextMessage{
			Text: proto.String(text),
			ContextInfo: &waProto.ContextInfo{
				StanzaID:    proto.String(string(quoted.ID)),
				Participant: proto.String(quoted.Sender.String()),
				QuotedMessage: &waProto.Message{
					Conversation: proto.String(quoted.Text),
				},
			},
		},
	})
	return err
}

func (w *waMessenger) SendMention(ctx context.Context, chat types.JID, text string, mentions []types.JID) error {
	jids := make([]string, 0, len(mentions))
	for _, j := range mentions {
		jids = append(jids, j.String())
	}
	_, err := w.client.SendMessage(ctx, chat, &waProto.Message{
		ExtendedTextMessage: &waProto.ExtendedTextMessage{
			Text: proto.String(text),
			ContextInfo: &waProto.ContextInfo{
				MentionedJID: jids,
			},
		},
	})
	return err
}

func (w *waMessenger) React(ctx context.Context, msg *bot.Incoming, emoji string) error {
	_, err := w.client.SendMessage(ctx, msg.Chat, &waProto.Message{
		ReactionMessage: &waProto.ReactionMessage{
			Key: &waProto.MessageKey{
				RemoteJID: proto.String(msg.Chat.String()),
				ID:        proto.String(string(msg.ID)),
				FromMe:    proto.Bool(false),
			},
			Text:              proto.String(emoji),
			SenderTimestampMS: proto.Int64(time.Now().UnixMilli()),
		},
	})
	return err
}

func (w *waMessenger) Revoke(ctx context.Context, msg *bot.Incoming) error {
	_, err := w.client.SendMessage(ctx, msg.Chat, w.client.BuildRevoke(msg.Chat, msg.Sender, msg.ID))
	return err
}

func (w *waMessenger) MarkRead(ctx context.Context, msg *bot.Incoming) error {
	return w.client.MarkRead(ctx, []types.MessageID{msg.ID}, time.Now(), msg.Chat, msg.Sender, types.ReceiptTypeRead)
}

func (w *waMessenger) SetTyping(ctx context.Context, chat types.JID, typing bool) {
	state := types.ChatPresenceComposing
	if !typing {
		state = types.ChatPresencePaused
	}
	// Best effort; a stuck indicator resolves itself on the paused update.
	_ = w.client.SendChatPresence(ctx, chat, state, types.ChatPresenceMediaText)
}

func (w *waMessenger) IsGroupAdmin(ctx context.Context, chat, user types.JID) (bool, error) {
	info, err := w.client.GetGroupInfo(ctx, chat)
	if err != nil {
		return false, err
	}
	for _, p := range info.Participants {
		if p.JID.User == user.User && (p.IsAdmin || p.IsSuperAdmin) {
			return true, nil
		}
	}
	return false, nil
}

func (w *waMessenger) GroupParticipants(ctx context.Context, chat types.JID) ([]types.JID, error) {
	info, err := w.client.GetGroupInfo(ctx, chat)
	if err != nil {
		return nil, err
	}
	jids := make([]types.JID, 0, len(info.Participants))
	for _, p := range info.Participants {
		jids = append(jids, p.JID)
	}
	return jids, nil
}
