package commands

import (
	"fmt"
	"time"

	"wabot/internal/core"
	"wabot/internal/version"
)

var startTime = time.Now()

func init() {
	register(&core.Command{
		Name:        "uptime",
		Category:    "ℹ️ Info",
		Description: "How long the bot has been running.",
		Execute:     uptimeExecute,
	})
}

func uptimeExecute(ctx *core.Context) error {
	up := time.Since(startTime).Round(time.Second)
	return ctx.Reply(fmt.Sprintf("⏱️ %s %s has been up for `%v`.", version.AppName, version.AppVersion, up))
}
