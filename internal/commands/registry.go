// Package commands holds the command catalog. Each file contributes its
// descriptors through init(); core.NewRegistry validates the assembled table
// at startup, skipping (and logging) anything malformed.
package commands

import "wabot/internal/core"

var catalog []*core.Command

func register(cmd *core.Command) {
	catalog = append(catalog, cmd)
}

// All returns the static command table in registration order.
func All() []*core.Command {
	out := make([]*core.Command, len(catalog))
	copy(out, catalog)
	return out
}
