package commands

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"wabot/internal/core"
)

func init() {
	register(&core.Command{
		Name:        "roll",
		Aliases:     []string{"dice"},
		Category:    "🎲 Games",
		Description: "Roll dice formulas like `2d6+1d4*2-3`.",
		Usage:       "<formula>",
		Execute:     rollExecute,
	})
}

var (
	rollTokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	diceRegex      = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
	validOps       = map[string]bool{"+": true, "-": true, "*": true, "/": true}
)

type rollTerm struct {
	value int
	desc  string
	op    string
}

func rollExecute(ctx *core.Context) error {
	if len(ctx.Args) == 0 {
		return replyUsage(ctx, "roll", "<formula>")
	}

	formula := strings.ReplaceAll(strings.Join(ctx.Args, ""), " ", "")
	tokens := rollTokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return ctx.Reply("Can't parse that formula. Try something like `2d6+1d4*2-3`.")
	}

	var terms []rollTerm
	currentOp := "+"
	for _, token := range tokens {
		if validOps[token] {
			currentOp = token
			continue
		}
		val, desc, err := evaluateRollToken(token)
		if err != nil {
			return ctx.Reply(fmt.Sprintf("Failed to evaluate `%s`: %v", token, err))
		}
		terms = append(terms, rollTerm{value: val, desc: desc, op: currentOp})
	}

	// * and / first
	var merged []rollTerm
	for _, t := range terms {
		if t.op == "*" || t.op == "/" {
			if len(merged) == 0 {
				return ctx.Reply("Syntax error: operator without left operand.")
			}
			prev := merged[len(merged)-1]
			merged = merged[:len(merged)-1]

			var newVal int
			switch t.op {
			case "*":
				newVal = prev.value * t.value
			case "/":
				if t.value == 0 {
					return ctx.Reply("Division by zero is forbidden. Even in games.")
				}
				newVal = prev.value / t.value
			}
			merged = append(merged, rollTerm{
				value: newVal,
				desc:  fmt.Sprintf("%s %s %s", prev.desc, t.op, t.desc),
				op:    prev.op,
			})
		} else {
			merged = append(merged, t)
		}
	}

	// then + and -
	total := 0
	var details []string
	for _, t := range merged {
		if len(details) > 0 {
			details = append(details, fmt.Sprintf(" %s ", t.op))
		}
		details = append(details, t.desc)

		switch t.op {
		case "+":
			total += t.value
		case "-":
			total -= t.value
		default:
			return ctx.Reply("Unexpected operator during evaluation.")
		}
	}

	return ctx.Reply(fmt.Sprintf("🎲 *Dice Roll*\nInput: `%s`\nCalculation: %s\nResult: *%d*",
		formula, strings.Join(details, ""), total))
}

func evaluateRollToken(token string) (int, string, error) {
	if diceRegex.MatchString(token) {
		matches := diceRegex.FindStringSubmatch(token)

		count := 1
		if matches[1] != "" {
			n, err := strconv.Atoi(matches[1])
			if err != nil || n < 1 || n > 100 {
				return 0, "", fmt.Errorf("invalid dice count")
			}
			count = n
		}
		sides, err := strconv.Atoi(matches[2])
		if err != nil || sides < 2 || sides > 1000 {
			return 0, "", fmt.Errorf("invalid dice sides")
		}

		total := 0
		rolls := make([]string, 0, count)
		for i := 0; i < count; i++ {
			r := rand.Intn(sides) + 1
			total += r
			rolls = append(rolls, strconv.Itoa(r))
		}
		return total, fmt.Sprintf("[%s]", strings.Join(rolls, ",")), nil
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, "", fmt.Errorf("not a number or dice term")
	}
	return n, token, nil
}
