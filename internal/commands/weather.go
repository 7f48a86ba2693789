package commands

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "weather",
		Aliases:     []string{"w"},
		Category:    "🌍 Utilities",
		Description: "Current weather for a city.",
		Usage:       "<city>",
		Cooldown:    10 * time.Second,
		Execute:     weatherExecute,
	})
}

func weatherExecute(ctx *core.Context) error {
	if len(ctx.Args) == 0 {
		return replyUsage(ctx, "weather", "<city>")
	}
	if ctx.Config.WeatherAPIKey == "" {
		return replyConfigError(ctx)
	}

	city := strings.Join(ctx.Args, " ")
	endpoint := fmt.Sprintf(
		"https://api.openweathermap.org/data/2.5/weather?q=%s&units=metric&appid=%s",
		url.QueryEscape(city), url.QueryEscape(ctx.Config.WeatherAPIKey),
	)

	var parsed struct {
		Name    string `json:"name"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := getJSON(ctx.Ctx, endpoint, &parsed); err != nil {
		return fmt.Errorf("weather lookup for %q: %w", city, err)
	}

	description := "unknown"
	if len(parsed.Weather) > 0 {
		description = parsed.Weather[0].Description
	}

	return ctx.Reply(fmt.Sprintf(
		"🌤️ *Weather in %s*\n%s\n🌡️ %.1f°C (feels like %.1f°C)\n💧 Humidity: %d%%\n💨 Wind: %.1f m/s",
		parsed.Name, description, parsed.Main.Temp, parsed.Main.FeelsLike,
		parsed.Main.Humidity, parsed.Wind.Speed,
	))
}
