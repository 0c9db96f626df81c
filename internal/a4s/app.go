package a4s

import (
	"github.com/hay-kot/a4s/internal/api"
	"github.com/hay-kot/a4s/internal/core/config"
	"github.com/hay-kot/a4s/internal/core/history"
	"github.com/hay-kot/a4s/internal/tui/notify"
)

// App is the central entry point for all a4s operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Crews     *CrewService
	Selection *Selection

	API     *api.Client
	Bus     *notify.Bus
	History history.Store
	Config  *config.Config
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, client *api.Client, bus *notify.Bus, hist history.Store) *App {
	return &App{
		Crews: NewCrewService(client, bus, CrewServiceOptions{
			RefreshConcurrency: cfg.API.RefreshConcurrency,
			History:            hist,
			MaxPayloads:        cfg.History.MaxPayloads,
		}),
		Selection: NewSelection(),
		API:       client,
		Bus:       bus,
		History:   hist,
		Config:    cfg,
	}
}
