package whatsapp

import (
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"wabot/internal/bot"
)

// incomingFromEvent flattens a whatsmeow message event into the neutral
// shape the dispatcher works with.
func incomingFromEvent(v *events.Message) *bot.Incoming {
	chat := v.Info.Chat
	return &bot.Incoming{
		ID:           v.Info.ID,
		Chat:         chat,
		Sender:       v.Info.Sender,
		PushName:     v.Info.PushName,
		Timestamp:    v.Info.Timestamp,
		Kind:         kindOf(v.Message),
		Text:         getText(v.Message),
		IsGroup:      v.Info.IsGroup,
		FromMe:       v.Info.IsFromMe,
		IsStatus:     chat == types.StatusBroadcastJID,
		IsNewsletter: chat.Server == types.NewsletterServer,
	}
}

// getText pulls the plain body, media caption, or extended-text body out of
// whichever shape the message arrived in. Empty string when none apply.
func getText(m *waProto.Message) string {
	if m == nil {
		return ""
	}
	if m.Conversation != nil {
		return m.GetConversation()
	}
	if m.ExtendedTextMessage != nil {
		return m.ExtendedTextMessage.GetText()
	}
	if m.ImageMessage != nil {
		return m.ImageMessage.GetCaption()
	}
	if m.VideoMessage != nil {
		return m.VideoMessage.GetCaption()
	}
	if m.DocumentMessage != nil {
		return m.DocumentMessage.GetCaption()
	}
	return ""
}

func kindOf(m *waProto.Message) bot.Kind {
	switch {
	case m == nil:
		return bot.KindOther
	case m.ImageMessage != nil:
		return bot.KindImage
	case m.VideoMessage != nil:
		return bot.KindVideo
	case m.AudioMessage != nil:
		return bot.KindAudio
	case m.StickerMessage != nil:
		return bot.KindSticker
	case m.DocumentMessage != nil:
		return bot.KindDocument
	case m.ContactMessage != nil:
		return bot.KindContact
	case m.Conversation != nil, m.ExtendedTextMessage != nil:
		return bot.KindText
	default:
		return bot.KindOther
	}
}
