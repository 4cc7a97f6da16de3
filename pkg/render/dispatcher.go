package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kontheocharis/katla-locations/pkg/logging"
	"github.com/kontheocharis/katla-locations/pkg/types"
)

// Dispatcher runs one katla invocation per snippet. Renderer failures are
// isolated per snippet: the dispatcher substitutes a placeholder comment
// and reports ok=false, never an error.
type Dispatcher struct {
	katla  string
	dryRun bool
	log    zerolog.Logger
}

// NewDispatcher creates a dispatcher invoking the given katla binary.
// In dry-run mode no process is executed; the planned invocation is logged
// and a placeholder stands in for its output.
func NewDispatcher(katla string, dryRun bool) *Dispatcher {
	return &Dispatcher{
		katla:  katla,
		dryRun: dryRun,
		log:    logging.GetLogger("render"),
	}
}

// Dispatch renders one snippet and returns its macro text. ok is false
// when the renderer failed and a placeholder comment was substituted.
func (d *Dispatcher) Dispatch(ctx context.Context, s types.Snippet, srcPath, ttmPath string) (fragment string, ok bool) {
	argv := Command(d.katla, s, srcPath, ttmPath)
	name := s.SnippetName()

	if d.dryRun {
		d.log.Info().Str("snippet", name).Msgf("would run: %s", strings.Join(argv, " "))
		return DryRunPlaceholder(name), true
	}

	out, err := run(ctx, argv)
	if err != nil {
		d.log.Error().Err(err).Str("snippet", name).Msg("katla failed")
		return ErrorPlaceholder(name), false
	}

	d.log.Info().Str("snippet", name).Msg("generated macro")
	return out, true
}

// run executes argv and returns its stdout. A non-zero exit and a failure
// to spawn are reported identically.
func run(ctx context.Context, argv []string) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", argv[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", argv[0], err)
	}

	return stdout.String(), nil
}
