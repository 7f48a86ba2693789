package commands

import (
	"fmt"
	"net/url"
	"strings"

	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "define",
		Aliases:     []string{"dict"},
		Category:    "🌍 Utilities",
		Description: "Dictionary definition of an English word.",
		Usage:       "<word>",
		Execute:     defineExecute,
	})
}

func defineExecute(ctx *core.Context) error {
	if len(ctx.Args) == 0 {
		return replyUsage(ctx, "define", "<word>")
	}

	word := strings.ToLower(ctx.Args[0])
	endpoint := "https://api.dictionaryapi.dev/api/v2/entries/en/" + url.PathEscape(word)

	var parsed []struct {
		Word     string `json:"word"`
		Phonetic string `json:"phonetic"`
		Meanings []struct {
			PartOfSpeech string `json:"partOfSpeech"`
			Definitions  []struct {
				Definition string `json:"definition"`
				Example    string `json:"example"`
			} `json:"definitions"`
		} `json:"meanings"`
	}
	if err := getJSON(ctx.Ctx, endpoint, &parsed); err != nil {
		return fmt.Errorf("dictionary lookup for %q: %w", word, err)
	}
	if len(parsed) == 0 || len(parsed[0].Meanings) == 0 {
		return ctx.Reply(fmt.Sprintf("🤷 No definition found for `%s`.", word))
	}

	entry := parsed[0]
	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 *%s*", entry.Word)
	if entry.Phonetic != "" {
		fmt.Fprintf(&sb, " _%s_", entry.Phonetic)
	}
	sb.WriteString("\n")

	for i, meaning := range entry.Meanings {
		if i >= 3 || len(meaning.Definitions) == 0 {
			break
		}
		def := meaning.Definitions[0]
		fmt.Fprintf(&sb, "\n*%s*: %s", meaning.PartOfSpeech, def.Definition)
		if def.Example != "" {
			fmt.Fprintf(&sb, "\n_e.g. %s_", def.Example)
		}
	}

	return ctx.Reply(sb.String())
}
