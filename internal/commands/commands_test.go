package commands

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"go.mau.fi/whatsmeow/types"

	"wabot/internal/bot"
	"wabot/internal/config"
	"wabot/internal/core"
)

type fakeMessenger struct {
	texts   []string
	replies []string
}

func (f *fakeMessenger) SendText(_ context.Context, _ types.JID, text string) error {
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeMessenger) Reply(_ context.Context, text string, _ *bot.Incoming) error {
	f.replies = append(f.replies, text)
	return nil
}

func (f *fakeMessenger) SendMention(context.Context, types.JID, string, []types.JID) error {
	return nil
}
func (f *fakeMessenger) React(context.Context, *bot.Incoming, string) error { return nil }
func (f *fakeMessenger) Revoke(context.Context, *bot.Incoming) error        { return nil }
func (f *fakeMessenger) MarkRead(context.Context, *bot.Incoming) error      { return nil }
func (f *fakeMessenger) SetTyping(context.Context, types.JID, bool)         {}
func (f *fakeMessenger) IsGroupAdmin(context.Context, types.JID, types.JID) (bool, error) {
	return false, nil
}
func (f *fakeMessenger) GroupParticipants(context.Context, types.JID) ([]types.JID, error) {
	return nil, nil
}

// countingTransport fails every request and counts them; tests use it to
// assert a command bailed out before reaching the network.
type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls++
	return nil, errors.New("network disabled in tests")
}

func blockNetwork(t *testing.T) *countingTransport {
	t.Helper()
	transport := &countingTransport{}
	prev := apiClient
	apiClient = &http.Client{Transport: transport}
	t.Cleanup(func() { apiClient = prev })
	return transport
}

func newTestContext(t *testing.T, args []string) (*core.Context, *fakeMessenger) {
	t.Helper()
	fake := &fakeMessenger{}
	chat := types.NewJID("12345", types.GroupServer)
	msg := &bot.Incoming{
		ID:       "MSG001",
		Chat:     chat,
		Sender:   types.NewJID("628111", types.DefaultUserServer),
		PushName: "Alice",
		IsGroup:  true,
	}
	return &core.Context{
		Ctx:       context.Background(),
		Msg:       msg,
		Args:      args,
		Prefix:    "!",
		IsGroup:   true,
		Responder: bot.NewResponder(fake, chat, ""),
		Messenger: fake,
		Config:    &config.Config{Prefix: "!", OwnerNumber: "628000"},
	}, fake
}

func TestWeatherWithoutArgsRepliesUsage(t *testing.T) {
	transport := blockNetwork(t)
	ctx, fake := newTestContext(t, nil)
	ctx.Config.WeatherAPIKey = "key"

	if err := weatherExecute(ctx); err != nil {
		t.Fatalf("usage errors are replies, not errors: %v", err)
	}
	if len(fake.replies) != 1 || !strings.Contains(fake.replies[0], "!weather <city>") {
		t.Fatalf("expected a usage message with the prefix, got %v", fake.replies)
	}
	if transport.calls != 0 {
		t.Fatalf("usage check must run before any API call, saw %d requests", transport.calls)
	}
}

func TestWeatherWithoutAPIKeyRepliesConfigError(t *testing.T) {
	transport := blockNetwork(t)
	ctx, fake := newTestContext(t, []string{"Jakarta"})

	if err := weatherExecute(ctx); err != nil {
		t.Fatalf("missing key is a reply, not an error: %v", err)
	}
	if len(fake.replies) != 1 || !strings.Contains(fake.replies[0], "Configuration error") {
		t.Fatalf("expected a configuration-error message, got %v", fake.replies)
	}
	if transport.calls != 0 {
		t.Fatalf("missing key must not trigger an API call, saw %d requests", transport.calls)
	}
}

func newTestTrivia(fake *fakeMessenger) *triviaSession {
	chat := types.NewJID("12345", types.GroupServer)
	return &triviaSession{
		responder: bot.NewResponder(fake, chat, ""),
		question:  "Which color?",
		options:   []string{"red", "green", "blue", "yellow"},
		correct:   1,
	}
}

func triviaReply(text string) *bot.Incoming {
	return &bot.Incoming{Text: text, PushName: "Alice"}
}

func TestTriviaCorrectLetterClosesSession(t *testing.T) {
	fake := &fakeMessenger{}
	sess := newTestTrivia(fake)

	done, err := sess.OnReply(context.Background(), triviaReply("b"))
	if err != nil {
		t.Fatalf("OnReply: %v", err)
	}
	if !done {
		t.Fatalf("correct letter must finish the session")
	}
	if len(fake.replies) != 1 || !strings.Contains(fake.replies[0], "Correct") ||
		!strings.Contains(fake.replies[0], "green") {
		t.Fatalf("expected congratulations naming the answer, got %v", fake.replies)
	}
}

func TestTriviaExactAnswerTextAccepted(t *testing.T) {
	fake := &fakeMessenger{}
	sess := newTestTrivia(fake)

	done, err := sess.OnReply(context.Background(), triviaReply("Green"))
	if err != nil {
		t.Fatalf("OnReply: %v", err)
	}
	if !done {
		t.Fatalf("exact answer text must finish the session")
	}
}

func TestTriviaWrongLetterKeepsSessionOpen(t *testing.T) {
	fake := &fakeMessenger{}
	sess := newTestTrivia(fake)

	done, err := sess.OnReply(context.Background(), triviaReply("A"))
	if err != nil {
		t.Fatalf("OnReply: %v", err)
	}
	if done {
		t.Fatalf("wrong guesses must keep the session open")
	}
	if len(fake.replies) != 1 || !strings.Contains(fake.replies[0], "Nope") {
		t.Fatalf("expected a retry prompt, got %v", fake.replies)
	}
}

func TestTriviaUnrecognizedGuessPrompts(t *testing.T) {
	fake := &fakeMessenger{}
	sess := newTestTrivia(fake)

	done, err := sess.OnReply(context.Background(), triviaReply("maybe green?"))
	if err != nil {
		t.Fatalf("OnReply: %v", err)
	}
	if done {
		t.Fatalf("an unrecognized guess must not finish the session")
	}
	if len(fake.replies) != 1 || !strings.Contains(fake.replies[0], "letter") {
		t.Fatalf("expected a pick-a-letter prompt, got %v", fake.replies)
	}
}

func TestTriviaTimeoutNamesAnswer(t *testing.T) {
	fake := &fakeMessenger{}
	sess := newTestTrivia(fake)

	sess.OnTimeout()

	if len(fake.texts) != 1 || !strings.Contains(fake.texts[0], "green") {
		t.Fatalf("timeout must announce the correct answer, got %v", fake.texts)
	}
}

func TestCatalogBuildsCleanRegistry(t *testing.T) {
	reg := core.NewRegistry(All())

	if reg.Len() == 0 {
		t.Fatalf("catalog is empty")
	}
	// Every descriptor must survive validation; a dropped one means a
	// duplicate name or a malformed entry slipped into the catalog.
	if reg.Len() != len(All()) {
		t.Fatalf("registry kept %d of %d catalog commands", reg.Len(), len(All()))
	}
}

func TestCatalogStableAcrossRegistryBuilds(t *testing.T) {
	first := core.NewRegistry(All())
	second := core.NewRegistry(All())
	if first.Len() != second.Len() {
		t.Fatalf("rebuilding the registry changed the catalog: %d vs %d", first.Len(), second.Len())
	}

	// All hands out a copy; mutating it must not poison later builds.
	list := All()
	list[0] = nil
	if got := core.NewRegistry(All()).Len(); got != first.Len() {
		t.Fatalf("mutating the returned slice leaked into the catalog: %d vs %d", got, first.Len())
	}
}
