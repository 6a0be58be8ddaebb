package userprofile

import (
	"context"
	"errors"
	"log/slog"
)

// Adapter isolates the decision engine from profile backend failures. Both
// methods are total: they never return an error and never panic on a broken
// Service. Faults are logged once, at error severity, and the decision in
// progress continues as if the cache were empty.
type Adapter struct {
	svc Service
	log *slog.Logger
}

// NewAdapter wraps a Service. Both arguments may be nil: a nil service makes
// Lookup always miss and Save a no-op, a nil logger discards diagnostics.
func NewAdapter(svc Service, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Adapter{svc: svc, log: log}
}

// Lookup fetches the user's profile, returning nil on miss or fault.
func (a *Adapter) Lookup(ctx context.Context, userID string) *Profile {
	if a.svc == nil {
		return nil
	}
	profile, err := a.svc.Lookup(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.log.ErrorContext(ctx, "user profile lookup failed",
				slog.String("operation", "lookup"),
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
		return nil
	}
	return profile
}

// Save persists the profile, best effort. A fault suppresses persistence but
// must not disturb the already-computed decision.
func (a *Adapter) Save(ctx context.Context, profile *Profile) {
	if a.svc == nil || profile == nil {
		return
	}
	if err := a.svc.Save(ctx, profile); err != nil {
		a.log.ErrorContext(ctx, "user profile save failed",
			slog.String("operation", "save"),
			slog.String("user_id", profile.UserID),
			slog.Any("error", err))
	}
}
