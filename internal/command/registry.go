package command

import (
	"sort"
	"strings"
)

// Registry maps case-folded command tokens (names and aliases) to
// descriptors. It is filled during startup and read-only afterwards, so
// lookups need no locking.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds a command under its name and every alias. Registration
// fails with *DuplicateCommandError on any case-folded collision, so a
// misconfigured command set is caught at startup rather than shadowing
// another command at runtime.
func (r *Registry) Register(cmd *Command) error {
	tokens := append([]string{cmd.Name}, cmd.Aliases...)
	folded := make([]string, len(tokens))
	for i, t := range tokens {
		folded[i] = strings.ToLower(t)
	}

	// Validate every token before touching the map, so a rejected command
	// leaves the registry exactly as it was.
	seen := make(map[string]bool, len(folded))
	for _, f := range folded {
		if _, exists := r.commands[f]; exists || seen[f] {
			return &DuplicateCommandError{Token: f}
		}
		seen[f] = true
	}
	for _, f := range folded {
		r.commands[f] = cmd
	}
	return nil
}

// MustRegister registers a batch and panics on collision. Used by startup
// code where a duplicate is a programming error.
func (r *Registry) MustRegister(cmds ...*Command) {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Resolve case-folds token and returns the matching descriptor.
func (r *Registry) Resolve(token string) (*Command, bool) {
	cmd, ok := r.commands[strings.ToLower(token)]
	return cmd, ok
}

// All returns every distinct command, sorted by Sort then Name.
func (r *Registry) All() []*Command {
	seen := make(map[string]bool)
	var list []*Command
	for _, cmd := range r.commands {
		if seen[cmd.Name] {
			continue
		}
		seen[cmd.Name] = true
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Sort != list[j].Sort {
			return list[i].Sort < list[j].Sort
		}
		return list[i].Name < list[j].Name
	})
	return list
}

// Categories returns category names in Sort order with their commands.
func (r *Registry) Categories() []CategoryGroup {
	byName := make(map[string]*CategoryGroup)
	var order []string
	for _, cmd := range r.All() {
		g, ok := byName[cmd.Category]
		if !ok {
			g = &CategoryGroup{Name: cmd.Category, Emoji: cmd.DisplayEmoji()}
			byName[cmd.Category] = g
			order = append(order, cmd.Category)
		}
		g.Commands = append(g.Commands, cmd)
	}
	groups := make([]CategoryGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, *byName[name])
	}
	return groups
}

// CategoryGroup is a category with its commands, used by the help surfaces.
type CategoryGroup struct {
	Name     string
	Emoji    string
	Commands []*Command
}
