package commands

import (
	"fmt"
	"net/url"
	"time"

	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "apod",
		Aliases:     []string{"nasa"},
		Category:    "🌍 Utilities",
		Description: "NASA astronomy picture of the day.",
		Premium:     true,
		Cooldown:    30 * time.Second,
		Execute:     apodExecute,
	})
}

func apodExecute(ctx *core.Context) error {
	if ctx.Config.NASAAPIKey == "" {
		return replyConfigError(ctx)
	}

	endpoint := "https://api.nasa.gov/planetary/apod?api_key=" + url.QueryEscape(ctx.Config.NASAAPIKey)

	var parsed struct {
		Title       string `json:"title"`
		Date        string `json:"date"`
		Explanation string `json:"explanation"`
		URL         string `json:"url"`
	}
	if err := getJSON(ctx.Ctx, endpoint, &parsed); err != nil {
		return fmt.Errorf("apod fetch: %w", err)
	}

	return ctx.Reply(fmt.Sprintf("🔭 *%s* (%s)\n\n%s\n\n%s",
		parsed.Title, parsed.Date, truncate(parsed.Explanation, 600), parsed.URL))
}
