package bot

import (
	"time"

	"go.mau.fi/whatsmeow/types"
)

// Kind is the coarse content shape of an inbound message.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindVideo
	KindAudio
	KindSticker
	KindDocument
	KindContact
	KindOther
)

// Incoming is the transport-neutral view of one inbound message. Text holds
// the plain body, the media caption, or the extended-text body; it is empty
// when the message carries none of those.
type Incoming struct {
	ID        types.MessageID
	Chat      types.JID
	Sender    types.JID
	PushName  string
	Timestamp time.Time

	Kind Kind
	Text string

	IsGroup      bool
	FromMe       bool
	IsStatus     bool // status@broadcast story
	IsNewsletter bool // channel post
}

// MentionCount returns how many @-mentions the body carries.
func (m *Incoming) MentionCount() int {
	n := 0
	for _, r := range m.Text {
		if r == '@' {
			n++
		}
	}
	return n
}
