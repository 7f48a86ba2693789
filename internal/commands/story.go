package commands

import (
	"context"
	"fmt"
	"strings"

	"wabot/internal/bot"
	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "story",
		Category:    "🎲 Games",
		Description: "Start a collaborative story; each reply adds a line.",
		Usage:       "[opening line]",
		GroupOnly:   true,
		Execute:     storyExecute,
	})
}

type storyLine struct {
	author string
	text   string
}

type storySession struct {
	responder *bot.Responder
	lines     []storyLine
}

func storyExecute(ctx *core.Context) error {
	if _, active := ctx.Sessions.Get(ctx.Msg.Chat); active {
		return ctx.Reply("🎮 A game is already running in this chat. Finish it first!")
	}

	sess := &storySession{responder: ctx.Responder}
	if opening := strings.Join(ctx.Args, " "); opening != "" {
		sess.lines = append(sess.lines, storyLine{author: authorName(ctx.Msg), text: opening})
	}

	if !ctx.Sessions.Start(ctx.Msg.Chat, sess) {
		return ctx.Reply("🎮 A game is already running in this chat. Finish it first!")
	}

	return ctx.Reply("📜 *Story time!* Every reply adds a line. Send `the end` to finish the story.")
}

// OnReply appends a line, or assembles and closes the story on "the end".
// Every turn rearms the inactivity timer.
func (s *storySession) OnReply(ctx context.Context, msg *bot.Incoming) (bool, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return false, nil
	}

	if strings.EqualFold(text, "the end") {
		return true, s.responder.Reply(ctx, "🏁 *The end!*\n\n"+s.assemble(), msg)
	}

	s.lines = append(s.lines, storyLine{author: authorName(msg), text: text})
	return false, s.responder.Reply(ctx, fmt.Sprintf("✍️ Line %d added.", len(s.lines)), msg)
}

// OnTimeout pauses the story and prints what was written so far.
func (s *storySession) OnTimeout() {
	_ = s.responder.Text(context.Background(), "⏸️ The story paused for inactivity.\n\n"+s.assemble())
}

func (s *storySession) assemble() string {
	if len(s.lines) == 0 {
		return "_(an empty page)_"
	}
	var sb strings.Builder
	for _, line := range s.lines {
		fmt.Fprintf(&sb, "%s _(%s)_\n", line.text, line.author)
	}
	return sb.String()
}

func authorName(msg *bot.Incoming) string {
	if msg.PushName != "" {
		return msg.PushName
	}
	return msg.Sender.User
}
