package commands

import (
	"fmt"
	"strings"

	"wabot/internal/core"
	"wabot/internal/moderation"
)

// Moderation toggles share one shape: admin-only, group-only, `on`/`off`
// argument, persisted immediately.
func init() {
	register(makeToggle("antilink", "Delete messages containing links. `warn` mode only warns.",
		func(s *moderation.Settings, on bool) { s.Antilink = on }))
	register(makeToggle("antibot", "Delete messages sent by other bots.",
		func(s *moderation.Settings, on bool) { s.Antibot = on }))
	register(makeToggle("antimention", "Delete mass-mention messages.",
		func(s *moderation.Settings, on bool) { s.Antimention = on }))
	register(makeToggle("antimedia", "Delete image, video and audio messages.",
		func(s *moderation.Settings, on bool) { s.Antimedia = on }))
	register(makeToggle("antisticker", "Delete sticker messages.",
		func(s *moderation.Settings, on bool) { s.Antisticker = on }))
	register(makeToggle("antinsfw", "Delete messages with NSFW words (built-in list).",
		func(s *moderation.Settings, on bool) { s.Antinsfw = on }))
	register(makeToggle("antibad", "Delete messages with banned words (see `badword`).",
		func(s *moderation.Settings, on bool) { s.Antibad = on }))
	register(makeToggle("antimenu", "Suppress the menu/help commands in this group.",
		func(s *moderation.Settings, on bool) { s.Antimenu = on }))

	register(&core.Command{
		Name:        "settings",
		Category:    "🛡️ Moderation",
		Description: "Show this group's moderation settings.",
		AdminOnly:   true,
		GroupOnly:   true,
		Execute:     settingsExecute,
	})
}

func makeToggle(name, description string, apply func(*moderation.Settings, bool)) *core.Command {
	return &core.Command{
		Name:        name,
		Category:    "🛡️ Moderation",
		Description: description,
		Usage:       "<on|off>",
		AdminOnly:   true,
		GroupOnly:   true,
		Execute: func(ctx *core.Context) error {
			if len(ctx.Args) == 0 {
				return replyUsage(ctx, name, "<on|off>")
			}

			arg := strings.ToLower(ctx.Args[0])
			var on, warnMode bool
			switch arg {
			case "on", "enable", "1":
				on = true
			case "off", "disable", "0":
				on = false
			case "warn":
				if name != "antilink" {
					return replyUsage(ctx, name, "<on|off>")
				}
				on, warnMode = true, true
			default:
				return replyUsage(ctx, name, "<on|off>")
			}

			err := ctx.Storage.UpdateGroupSettings(ctx.Msg.Chat.String(), func(s *moderation.Settings) {
				apply(s, on)
				if name == "antilink" {
					s.AntilinkWarn = warnMode
				}
			})
			if err != nil {
				return fmt.Errorf("update %s: %w", name, err)
			}

			state := "off ❌"
			switch {
			case warnMode:
				state = "warn-only ⚠️"
			case on:
				state = "on ✅"
			}
			return ctx.Reply(fmt.Sprintf("🛡️ `%s` is now %s for this group.", name, state))
		},
	}
}

func settingsExecute(ctx *core.Context) error {
	set := ctx.Storage.GroupSettings(ctx.Msg.Chat.String())
	if set == nil {
		return ctx.Reply("🛡️ No moderation settings for this group yet. All filters are off.")
	}

	flag := func(on bool) string {
		if on {
			return "✅"
		}
		return "❌"
	}

	var sb strings.Builder
	sb.WriteString("🛡️ *Group moderation settings*\n")
	fmt.Fprintf(&sb, "antilink: %s", flag(set.Antilink))
	if set.Antilink && set.AntilinkWarn {
		sb.WriteString(" (warn-only)")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "antibot: %s\n", flag(set.Antibot))
	fmt.Fprintf(&sb, "antimention: %s\n", flag(set.Antimention))
	fmt.Fprintf(&sb, "antimedia: %s\n", flag(set.Antimedia))
	fmt.Fprintf(&sb, "antisticker: %s\n", flag(set.Antisticker))
	fmt.Fprintf(&sb, "antinsfw: %s\n", flag(set.Antinsfw))
	fmt.Fprintf(&sb, "antibad: %s\n", flag(set.Antibad))
	fmt.Fprintf(&sb, "antimenu: %s\n", flag(set.Antimenu))
	fmt.Fprintf(&sb, "banned words: %d", len(set.BannedWords))

	return ctx.Reply(sb.String())
}
