package commands

import (
	"fmt"
	"strings"

	"wabot/internal/core"
	"wabot/internal/version"
)

func init() {
	register(&core.Command{
		Name:        "menu",
		Aliases:     []string{"commands"},
		Category:    "ℹ️ Info",
		Description: "List every available command.",
		Execute:     menuExecute,
	})
	register(&core.Command{
		Name:        "help",
		Aliases:     []string{"h"},
		Category:    "ℹ️ Info",
		Description: "Details about one command.",
		Usage:       "<command>",
		Execute:     helpExecute,
	})
}

func menuExecute(ctx *core.Context) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📖 *%s menu* (prefix `%s`)\n", version.AppName, ctx.Prefix)

	category := ""
	for _, cmd := range ctx.Registry.All() {
		if cmd.Category != category {
			category = cmd.Category
			fmt.Fprintf(&sb, "\n*%s*\n", category)
		}
		fmt.Fprintf(&sb, "• `%s%s` — %s\n", ctx.Prefix, cmd.Name, cmd.Description)
	}

	return ctx.Reply(sb.String())
}

func helpExecute(ctx *core.Context) error {
	if len(ctx.Args) == 0 {
		return replyUsage(ctx, "help", "<command>")
	}

	cmd, ok := ctx.Registry.Resolve(ctx.Args[0])
	if !ok {
		return ctx.Reply(fmt.Sprintf("🤷 No such command: `%s`", ctx.Args[0]))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s%s*", ctx.Prefix, cmd.Name)
	if cmd.Usage != "" {
		fmt.Fprintf(&sb, " `%s`", cmd.Usage)
	}
	fmt.Fprintf(&sb, "\n%s\n", cmd.Description)
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(&sb, "Aliases: `%s`\n", strings.Join(cmd.Aliases, "`, `"))
	}

	var gates []string
	if cmd.OwnerOnly {
		gates = append(gates, "owner only")
	}
	if cmd.AdminOnly {
		gates = append(gates, "admin only")
	}
	if cmd.Premium {
		gates = append(gates, "premium")
	}
	if cmd.GroupOnly {
		gates = append(gates, "groups only")
	}
	if cmd.PrivateOnly {
		gates = append(gates, "private only")
	}
	if len(gates) > 0 {
		fmt.Fprintf(&sb, "Access: %s\n", strings.Join(gates, ", "))
	}

	return ctx.Reply(sb.String())
}
