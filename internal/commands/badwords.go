package commands

import (
	"fmt"
	"strings"

	"wabot/internal/core"
	"wabot/internal/moderation"
)

func init() {
	register(&core.Command{
		Name:        "badword",
		Aliases:     []string{"badwords"},
		Category:    "🛡️ Moderation",
		Description: "Manage this group's banned-word list.",
		Usage:       "<add|del|list> [word]",
		AdminOnly:   true,
		GroupOnly:   true,
		Execute:     badwordExecute,
	})
}

func badwordExecute(ctx *core.Context) error {
	if len(ctx.Args) == 0 {
		return replyUsage(ctx, "badword", "<add|del|list> [word]")
	}

	chatID := ctx.Msg.Chat.String()
	action := strings.ToLower(ctx.Args[0])

	switch action {
	case "list":
		set := ctx.Storage.GroupSettings(chatID)
		if set == nil || len(set.BannedWords) == 0 {
			return ctx.Reply("📋 No banned words in this group.")
		}
		return ctx.Reply(fmt.Sprintf("📋 *Banned words (%d)*\n%s",
			len(set.BannedWords), strings.Join(set.BannedWords, ", ")))

	case "add":
		if len(ctx.Args) < 2 {
			return replyUsage(ctx, "badword", "add <word>")
		}
		word := strings.ToLower(ctx.Args[1])

		var dup bool
		err := ctx.Storage.UpdateGroupSettings(chatID, func(s *moderation.Settings) {
			for _, w := range s.BannedWords {
				if w == word {
					dup = true
					return
				}
			}
			s.BannedWords = append(s.BannedWords, word)
		})
		if err != nil {
			return fmt.Errorf("badword add: %w", err)
		}
		if dup {
			return ctx.Reply(fmt.Sprintf("ℹ️ `%s` is already banned.", word))
		}
		return ctx.Reply(fmt.Sprintf("🚫 Added `%s` to the banned words. Enable `antibad` to enforce it.", word))

	case "del", "remove":
		if len(ctx.Args) < 2 {
			return replyUsage(ctx, "badword", "del <word>")
		}
		word := strings.ToLower(ctx.Args[1])

		var found bool
		err := ctx.Storage.UpdateGroupSettings(chatID, func(s *moderation.Settings) {
			kept := s.BannedWords[:0]
			for _, w := range s.BannedWords {
				if w == word {
					found = true
					continue
				}
				kept = append(kept, w)
			}
			s.BannedWords = kept
		})
		if err != nil {
			return fmt.Errorf("badword del: %w", err)
		}
		if !found {
			return ctx.Reply(fmt.Sprintf("🤷 `%s` was not on the list.", word))
		}
		return ctx.Reply(fmt.Sprintf("✅ Removed `%s` from the banned words.", word))

	default:
		return replyUsage(ctx, "badword", "<add|del|list> [word]")
	}
}
