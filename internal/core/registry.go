package core

import (
	"log"
	"sort"
	"strings"
)

// Registry is the validated command table. Built once at startup from the
// static catalog; descriptors that fail validation are logged and skipped so
// one malformed plugin can never abort the bot.
type Registry struct {
	byName  map[string]*Command
	byAlias map[string]*Command
	list    []*Command
}

// NewRegistry validates cmds and builds the name and alias indexes. Aliases
// resolve to the same descriptor as the canonical name; collisions between
// an alias and an existing name (or another alias) are logged and dropped.
func NewRegistry(cmds []*Command) *Registry {
	r := &Registry{
		byName:  make(map[string]*Command),
		byAlias: make(map[string]*Command),
	}

	for _, cmd := range cmds {
		if cmd == nil {
			log.Println("[WARN] Skipping nil command descriptor")
			continue
		}
		name := strings.ToLower(strings.TrimSpace(cmd.Name))
		switch {
		case name == "":
			log.Println("[WARN] Skipping command with empty name")
			continue
		case cmd.Execute == nil:
			log.Printf("[WARN] Skipping command %q: no execute function", name)
			continue
		case r.byName[name] != nil:
			log.Printf("[WARN] Skipping duplicate command %q", name)
			continue
		}

		r.byName[name] = cmd
		r.list = append(r.list, cmd)

		for _, alias := range cmd.Aliases {
			alias = strings.ToLower(strings.TrimSpace(alias))
			if alias == "" || alias == name {
				continue
			}
			if r.byName[alias] != nil || r.byAlias[alias] != nil {
				log.Printf("[WARN] Dropping alias %q of command %q: already taken", alias, name)
				continue
			}
			r.byAlias[alias] = cmd
		}
	}

	sort.Slice(r.list, func(i, j int) bool {
		if r.list[i].Category != r.list[j].Category {
			return r.list[i].Category < r.list[j].Category
		}
		return r.list[i].Name < r.list[j].Name
	})

	return r
}

// Resolve looks up a typed command word, canonical names first, then aliases.
func (r *Registry) Resolve(name string) (*Command, bool) {
	name = strings.ToLower(name)
	if cmd, ok := r.byName[name]; ok {
		return cmd, true
	}
	cmd, ok := r.byAlias[name]
	return cmd, ok
}

// All returns the registered commands sorted by category then name.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.list))
	copy(out, r.list)
	return out
}

// Len reports how many commands survived validation.
func (r *Registry) Len() int {
	return len(r.list)
}
