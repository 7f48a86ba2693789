package commands

import (
	"fmt"
	"time"

	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "ping",
		Aliases:     []string{"p"},
		Category:    "ℹ️ Info",
		Description: "Pong! Shows message round-trip delay.",
		Execute:     pingExecute,
	})
}

func pingExecute(ctx *core.Context) error {
	delay := time.Since(ctx.Msg.Timestamp).Round(time.Millisecond)
	return ctx.Reply(fmt.Sprintf("🏓 Pong! Delivery delay: `%v`", delay))
}
