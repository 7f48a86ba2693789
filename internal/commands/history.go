package commands

import (
	"fmt"
	"strings"

	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "history",
		Category:    "👥 Group",
		Description: "Show the recent commands used in this chat.",
		AdminOnly:   true,
		GroupOnly:   true,
		Execute:     historyExecute,
	})
}

func historyExecute(ctx *core.Context) error {
	records, err := ctx.Storage.FetchCommandHistory(ctx.Msg.Chat.String())
	if err != nil {
		return fmt.Errorf("fetch command history: %w", err)
	}
	if len(records) == 0 {
		return ctx.Reply("📋 No commands recorded for this chat yet.")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 *Recent commands (%d)*\n", len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		who := rec.PushName
		if who == "" {
			who = rec.Sender
		}
		fmt.Fprintf(&sb, "%s — %s%s", rec.Datetime.Format("02 Jan 15:04"), ctx.Prefix, rec.Command)
		if rec.Param != "" {
			fmt.Fprintf(&sb, " %s", truncate(rec.Param, 30))
		}
		fmt.Fprintf(&sb, " _(%s)_\n", who)
	}

	return ctx.Reply(sb.String())
}
