package moderation

import (
	"log"
	"regexp"
	"strings"

	"wabot/internal/bot"
)

// Verdict describes a fired filter. Nil verdict means the message passed.
type Verdict struct {
	Filter   string // filter identifier, for logging
	Warning  string // user-facing warning text
	WarnOnly bool   // warn without requesting deletion
}

var linkRegex = regexp.MustCompile(`(?i)https?://|chat\.whatsapp\.com/`)

// baileysIDPrefixes mark message IDs generated by common bot libraries.
var baileysIDPrefixes = []string{"3EB0", "BAE5"}

const massMentionThreshold = 5

type filter struct {
	name string
	run  func(set *Settings, msg *bot.Incoming, prefix string) *Verdict
}

// chain order is fixed; the first match wins.
var chain = []filter{
	{"antilink", filterLink},
	{"antibot", filterBot},
	{"antimention", filterMention},
	{"antimedia", filterMedia},
	{"antisticker", filterSticker},
	{"antiword", filterWords},
	{"antimenu", filterMenu},
}

// Inspect runs the filter chain over one inbound group message. At most one
// filter fires. Admin exemption is the caller's job (the dispatcher checks
// admin status once per message and skips Inspect for admins). A panicking
// filter is logged and treated as "did not match" so moderation can never
// block message flow.
func Inspect(set *Settings, msg *bot.Incoming, prefix string) *Verdict {
	if set == nil {
		return nil
	}
	for _, f := range chain {
		if v := runSafely(f, set, msg, prefix); v != nil {
			return v
		}
	}
	return nil
}

func runSafely(f filter, set *Settings, msg *bot.Incoming, prefix string) (v *Verdict) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] Moderation filter %s panicked: %v", f.name, r)
			v = nil
		}
	}()
	return f.run(set, msg, prefix)
}

func filterLink(set *Settings, msg *bot.Incoming, _ string) *Verdict {
	if !set.Antilink || !linkRegex.MatchString(msg.Text) {
		return nil
	}
	return &Verdict{
		Filter:   "antilink",
		Warning:  "🔗 Links are not allowed in this group.",
		WarnOnly: set.AntilinkWarn,
	}
}

func filterBot(set *Settings, msg *bot.Incoming, _ string) *Verdict {
	if !set.Antibot {
		return nil
	}
	for _, p := range baileysIDPrefixes {
		if strings.HasPrefix(string(msg.ID), p) {
			return &Verdict{Filter: "antibot", Warning: "🤖 Bot messages are not allowed in this group."}
		}
	}
	return nil
}

func filterMention(set *Settings, msg *bot.Incoming, _ string) *Verdict {
	if !set.Antimention || msg.MentionCount() < massMentionThreshold {
		return nil
	}
	return &Verdict{Filter: "antimention", Warning: "📢 Mass mentions are not allowed in this group."}
}

func filterMedia(set *Settings, msg *bot.Incoming, _ string) *Verdict {
	if !set.Antimedia {
		return nil
	}
	switch msg.Kind {
	case bot.KindImage, bot.KindVideo, bot.KindAudio:
		return &Verdict{Filter: "antimedia", Warning: "📵 Media messages are not allowed in this group."}
	}
	return nil
}

func filterSticker(set *Settings, msg *bot.Incoming, _ string) *Verdict {
	if !set.Antisticker || msg.Kind != bot.KindSticker {
		return nil
	}
	return &Verdict{Filter: "antisticker", Warning: "🚫 Stickers are not allowed in this group."}
}

func filterWords(set *Settings, msg *bot.Incoming, _ string) *Verdict {
	if !set.Antibad && !set.Antinsfw {
		return nil
	}

	var words []string
	if set.Antibad {
		words = append(words, set.BannedWords...)
	}
	if set.Antinsfw {
		words = append(words, builtinProfanity...)
	}

	lower := strings.ToLower(msg.Text)
	for _, w := range words {
		if w == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(w)) {
			return &Verdict{Filter: "antiword", Warning: "🤬 That word is not allowed in this group."}
		}
	}
	return nil
}

func filterMenu(set *Settings, msg *bot.Incoming, prefix string) *Verdict {
	if !set.Antimenu || prefix == "" || !strings.HasPrefix(msg.Text, prefix) {
		return nil
	}
	fields := strings.Fields(strings.TrimPrefix(msg.Text, prefix))
	if len(fields) == 0 {
		return nil
	}
	switch strings.ToLower(fields[0]) {
	case "menu", "help":
		return &Verdict{Filter: "antimenu", Warning: "📖 The menu is disabled in this group."}
	}
	return nil
}
