package commands

import (
	"context"
	"fmt"
	"html"
	"math/rand"
	"strings"

	"wabot/internal/bot"
	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "trivia",
		Aliases:     []string{"quiz"},
		Category:    "🎲 Games",
		Description: "Start a trivia question; answer with A-D.",
		Execute:     triviaExecute,
	})
}

var answerLetters = []string{"A", "B", "C", "D"}

type triviaSession struct {
	responder *bot.Responder
	question  string
	options   []string
	correct   int // index into options
}

func triviaExecute(ctx *core.Context) error {
	if _, active := ctx.Sessions.Get(ctx.Msg.Chat); active {
		return ctx.Reply("🎮 A game is already running in this chat. Finish it first!")
	}

	var parsed struct {
		ResponseCode int `json:"response_code"`
		Results      []struct {
			Question         string   `json:"question"`
			CorrectAnswer    string   `json:"correct_answer"`
			IncorrectAnswers []string `json:"incorrect_answers"`
		} `json:"results"`
	}
	if err := getJSON(ctx.Ctx, "https://opentdb.com/api.php?amount=1&type=multiple", &parsed); err != nil {
		return fmt.Errorf("trivia fetch: %w", err)
	}
	if parsed.ResponseCode != 0 || len(parsed.Results) == 0 {
		return fmt.Errorf("trivia API returned code %d", parsed.ResponseCode)
	}

	q := parsed.Results[0]
	options := make([]string, 0, len(q.IncorrectAnswers)+1)
	options = append(options, html.UnescapeString(q.CorrectAnswer))
	for _, a := range q.IncorrectAnswers {
		options = append(options, html.UnescapeString(a))
	}

	correct := 0
	perm := rand.Perm(len(options))
	shuffled := make([]string, len(options))
	for to, from := range perm {
		shuffled[to] = options[from]
		if from == 0 {
			correct = to
		}
	}

	sess := &triviaSession{
		responder: ctx.Responder,
		question:  html.UnescapeString(q.Question),
		options:   shuffled,
		correct:   correct,
	}
	if !ctx.Sessions.Start(ctx.Msg.Chat, sess) {
		return ctx.Reply("🎮 A game is already running in this chat. Finish it first!")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🧠 *Trivia time!*\n%s\n\n", sess.question)
	for i, opt := range shuffled {
		if i >= len(answerLetters) {
			break
		}
		fmt.Fprintf(&sb, "*%s)* %s\n", answerLetters[i], opt)
	}
	sb.WriteString("\nReply with the letter of your answer!")

	return ctx.Reply(sb.String())
}

// OnReply grades a non-command reply. Wrong guesses keep the session open
// (the inactivity timer is rearmed by the store).
func (t *triviaSession) OnReply(ctx context.Context, msg *bot.Incoming) (bool, error) {
	guess := strings.TrimSpace(strings.ToUpper(msg.Text))

	matched := -1
	for i, letter := range answerLetters {
		if i >= len(t.options) {
			break
		}
		if guess == letter || strings.EqualFold(strings.TrimSpace(msg.Text), t.options[i]) {
			matched = i
			break
		}
	}
	if matched == -1 {
		return false, t.responder.Reply(ctx, "❓ Answer with one of the letters above.", msg)
	}

	if matched == t.correct {
		return true, t.responder.Reply(ctx,
			fmt.Sprintf("🎉 Correct, %s! The answer was *%s*.", msg.PushName, t.options[t.correct]), msg)
	}
	return false, t.responder.Reply(ctx, "❌ Nope, try again!", msg)
}

// OnTimeout announces expiry; the store has already dropped the session.
func (t *triviaSession) OnTimeout() {
	_ = t.responder.Text(context.Background(),
		fmt.Sprintf("⏰ Time's up! The answer was *%s*.", t.options[t.correct]))
}
