// Package logging provides zerolog helpers shared by a4s components.
package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger().Hook(ContextHook{})
}

// Ctx returns l with the request and crew identifiers from ctx attached as
// fields, for loggers that outlive a single event.
func Ctx(ctx context.Context, l zerolog.Logger) zerolog.Logger {
	lc := l.With()
	if id := GetRequestID(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if id := GetCrewID(ctx); id != "" {
		lc = lc.Str("crew_id", id)
	}
	return lc.Logger()
}
