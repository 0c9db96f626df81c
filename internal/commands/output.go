package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/api"
	corenotify "github.com/hay-kot/a4s/internal/core/notify"
	"github.com/hay-kot/a4s/internal/printer"
	"github.com/hay-kot/a4s/internal/tui/notify"
)

// printNotifications echoes bus notifications through the context printer.
// CLI commands call it so that outcome messages published by services reach
// the terminal the same way toasts do in the TUI.
func printNotifications(ctx context.Context, bus *notify.Bus) {
	if bus == nil {
		return
	}
	p := printer.Ctx(ctx)
	bus.Subscribe(func(n corenotify.Notification) {
		switch n.Level {
		case corenotify.LevelError:
			p.Errorf("%s", n.Text())
		case corenotify.LevelWarning:
			p.Warnf("%s", n.Text())
		default:
			p.Infof("%s", n.Text())
		}
	})
}

// backendError rewrites a failed backend call into something a user can act
// on. crewID may be empty for calls that are not about a single crew.
func backendError(app *a4s.App, crewID string, err error) error {
	var urlErr *url.Error
	switch {
	case err == nil:
		return nil
	case crewID != "" && api.IsNotFound(err):
		return fmt.Errorf("%w: %s", a4s.ErrCrewNotFound, crewID)
	case api.StatusCode(err) >= 500:
		return fmt.Errorf("crew backend failed (HTTP %d): %w", api.StatusCode(err), err)
	case errors.As(err, &urlErr) && app.API != nil:
		return fmt.Errorf("cannot reach crew backend at %s: %w", app.API.BaseURL(), err)
	}
	return err
}
