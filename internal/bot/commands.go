package bot

import (
	"github.com/aurora9161/mochabot/internal/command"
	"github.com/aurora9161/mochabot/internal/command/coffee"
	"github.com/aurora9161/mochabot/internal/command/fun"
	"github.com/aurora9161/mochabot/internal/command/general"
	"github.com/aurora9161/mochabot/internal/command/moderation"
	"github.com/aurora9161/mochabot/internal/command/utility"
	"github.com/aurora9161/mochabot/internal/command/wellness"
)

// registerAllCommands fills the registry with every command group. A name
// or alias collision between groups is a programming error and panics at
// startup.
func registerAllCommands(reg *command.Registry) {
	reg.MustRegister(general.Commands()...)
	reg.MustRegister(coffee.Commands()...)
	reg.MustRegister(fun.Commands()...)
	reg.MustRegister(wellness.Commands()...)
	reg.MustRegister(moderation.Commands()...)
	reg.MustRegister(utility.Commands()...)
}
