package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "premium",
		Category:    "👑 Premium",
		Description: "Check your premium status.",
		Execute:     premiumExecute,
	})
	register(&core.Command{
		Name:        "listpremium",
		Category:    "👑 Premium",
		Description: "List all premium subscribers.",
		OwnerOnly:   true,
		Execute:     listPremiumExecute,
	})
}

func premiumExecute(ctx *core.Context) error {
	if ctx.IsOwner {
		return ctx.Reply("👑 You are the owner. Everything is unlocked.")
	}
	if ctx.IsPremium {
		return ctx.Reply("👑 You are a *premium* user. Enjoy!")
	}
	return ctx.Reply("🔒 You are not a premium user.")
}

func listPremiumExecute(ctx *core.Context) error {
	records := ctx.Premium.All()
	if len(records) == 0 {
		return ctx.Reply("📋 The premium list is empty.")
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Number < records[j].Number })

	var sb strings.Builder
	fmt.Fprintf(&sb, "👑 *Premium subscribers (%d)*\n", len(records))
	now := time.Now()
	for _, rec := range records {
		status := "active"
		if !now.Before(rec.Expiry) {
			status = "expired"
		}
		fmt.Fprintf(&sb, "• %s — %s until %s\n", rec.Number, status, rec.Expiry.Format("2006-01-02"))
	}

	return ctx.Reply(sb.String())
}
