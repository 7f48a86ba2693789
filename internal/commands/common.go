package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wabot/internal/core"
)

// apiClient is shared by every command that calls a third-party REST API.
var apiClient = &http.Client{Timeout: 15 * time.Second}

// replyUsage sends the fixed usage-error message for a command, including
// the configured prefix.
func replyUsage(ctx *core.Context, name, usage string) error {
	return ctx.Reply(fmt.Sprintf("📝 Usage: `%s%s %s`", ctx.Prefix, name, usage))
}

// replyConfigError reports a missing API key or URL. Detected only when the
// affected command runs; never fatal to the process.
func replyConfigError(ctx *core.Context) error {
	return ctx.Reply("⚙️ Configuration error: this command is missing an API key. Ask the bot owner to set it.")
}

// getJSON fetches url and decodes the JSON response into out. Errors are
// returned to the dispatcher, which logs them and sends the generic
// service-failed message.
func getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := apiClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, truncate(string(body), 200))
	}

	return json.Unmarshal(body, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
