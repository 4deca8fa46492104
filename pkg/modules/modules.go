// Package modules implements the built-in status line modules and the
// registry the engine dispatches through.
package modules

import (
	"github.com/arthur-debert/promptline/pkg/errors"
	"github.com/arthur-debert/promptline/pkg/registry"
	"github.com/arthur-debert/promptline/pkg/types"
)

// Module is the capability contract every status line module fulfills.
// Both operations must be side-effect free: on timeout the engine
// abandons the running call and may invoke a fresh instance later.
type Module interface {
	// Name returns the module's token name as used in format strings.
	Name() string

	// ShouldDisplay reports whether the module has anything to show for
	// this context. The engine skips Render when it returns false.
	ShouldDisplay(ctx *types.Context) bool

	// Render produces the module's ANSI-styled output.
	Render(ctx *types.Context) (string, error)
}

// Factory creates a fresh module instance. The engine never reuses an
// instance across operations, so an abandoned timed-out call can't leak
// state into the next one.
type Factory func() Module

var builtins = registry.New[Factory]()

func init() {
	registry.MustRegister(builtins, "directory", func() Module { return &DirectoryModule{} })
	registry.MustRegister(builtins, "claude_model", func() Module { return &ClaudeModelModule{} })
	registry.MustRegister(builtins, "git_branch", func() Module { return &GitBranchModule{} })
	registry.MustRegister(builtins, "git_status", func() Module { return &GitStatusModule{} })
}

// Register adds a module factory under a new token name. Built-in names
// are taken; registering over one is an error.
func Register(name string, factory Factory) error {
	return builtins.Register(name, factory)
}

// Lookup returns the factory for a module name.
func Lookup(name string) (Factory, error) {
	factory, err := builtins.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrUnknownModule, "unknown module %q", name)
	}
	return factory, nil
}

// Has reports whether a module name is registered.
func Has(name string) bool {
	return builtins.Has(name)
}

// Names returns all registered module names, sorted.
func Names() []string {
	return builtins.List()
}
