// Package engine orchestrates a render: it resolves the configured
// format's tokens to module outputs, runs every module concurrently
// under the command timeout, and compiles the final ANSI string.
package engine

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/promptline/pkg/claude"
	"github.com/arthur-debert/promptline/pkg/config"
	"github.com/arthur-debert/promptline/pkg/errors"
	"github.com/arthur-debert/promptline/pkg/execution"
	"github.com/arthur-debert/promptline/pkg/format"
	"github.com/arthur-debert/promptline/pkg/logging"
	"github.com/arthur-debert/promptline/pkg/modules"
	"github.com/arthur-debert/promptline/pkg/style"
	"github.com/arthur-debert/promptline/pkg/types"
)

// Render produces the status line for one stdin payload.
func Render(input *claude.Input, cfg *config.Config) string {
	return render(input, cfg, style.SupportsTruecolor())
}

func render(input *claude.Input, cfg *config.Config, truecolor bool) string {
	ctx := types.NewContext(input, cfg)
	logger := logging.GetLogger("engine")

	names := format.Tokenize(cfg.Format)
	outputs := make(map[string]string, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range names {
		// The character token belongs to the shell prompt, and $style is
		// resolved inside bracket groups; neither maps to a module.
		if name == "character" || name == format.StyleToken {
			continue
		}
		factory, err := modules.Lookup(name)
		if err != nil {
			logger.Debug().Str("module", name).Msg("unknown module token")
			continue
		}

		wg.Add(1)
		go func(name string, factory modules.Factory) {
			defer wg.Done()

			timeout := cfg.Timeout()
			display, err := execution.RunWithTimeout(timeout, func() (bool, error) {
				return factory().ShouldDisplay(ctx), nil
			})
			if err != nil {
				logFailure(logger, name, "should_display", timeout.Milliseconds(), err)
				return
			}
			if !display {
				return
			}

			// A fresh instance per operation: a timed-out ShouldDisplay may
			// still be running on its abandoned goroutine.
			out, err := execution.RunWithTimeout(timeout, func() (string, error) {
				return factory().Render(ctx)
			})
			if err != nil {
				logFailure(logger, name, "render", timeout.Milliseconds(), err)
				return
			}

			mu.Lock()
			outputs[name] = normalizeModuleOutput(out)
			mu.Unlock()
		}(name, factory)
	}
	wg.Wait()

	return style.RenderWith(cfg.Format, outputs, "", truecolor)
}

// logFailure reports a skipped module. Timeouts get the full wording so
// the log pinpoints the slow operation and its budget.
func logFailure(logger zerolog.Logger, name, operation string, budgetMs int64, err error) {
	evt := logger.Warn().Err(err).Str("module", name)
	if errors.IsErrorCode(err, errors.ErrTimeout) {
		evt.Msgf("module %s timed out in %s after %dms", name, operation, budgetMs)
		return
	}
	evt.Msgf("module %s failed in %s", name, operation)
}

// normalizeModuleOutput strips one trailing reset so embedding a module's
// output mid-line doesn't break the surrounding template's styling. The
// compiler appends the final reset itself.
func normalizeModuleOutput(out string) string {
	return strings.TrimSuffix(out, "\x1b[0m")
}
