package commands

import (
	"fmt"
	"strings"
	"time"

	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "tagall",
		Aliases:     []string{"everyone"},
		Category:    "👥 Group",
		Description: "Mention every member of the group.",
		Usage:       "[announcement]",
		AdminOnly:   true,
		GroupOnly:   true,
		Cooldown:    30 * time.Second,
		Execute:     tagallExecute,
	})
}

func tagallExecute(ctx *core.Context) error {
	members, err := ctx.Messenger.GroupParticipants(ctx.Ctx, ctx.Msg.Chat)
	if err != nil {
		return fmt.Errorf("group participants: %w", err)
	}
	if len(members) == 0 {
		return ctx.Reply("🤷 I can't see anyone in this group.")
	}

	var sb strings.Builder
	if note := strings.Join(ctx.Args, " "); note != "" {
		sb.WriteString("📢 " + note + "\n\n")
	} else {
		sb.WriteString("📢 *Attention everyone!*\n\n")
	}
	for _, member := range members {
		fmt.Fprintf(&sb, "@%s\n", member.User)
	}

	return ctx.Responder.Mention(ctx.Ctx, sb.String(), members)
}
