package splitkit

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/splitkit/pkg/datafile"
	"github.com/dmitrymomot/splitkit/pkg/decision"
	"github.com/dmitrymomot/splitkit/pkg/userprofile"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger routes the engine's diagnostics to the given logger. Nil
// loggers are ignored; the default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithUserProfileService enables sticky bucketing backed by the given store.
func WithUserProfileService(svc userprofile.Service) Option {
	return func(c *Client) {
		c.profileSvc = svc
	}
}

// Client is the public SDK surface. Construct one per datafile; it is safe
// for concurrent use.
type Client struct {
	config     *datafile.ProjectConfig
	decisions  *decision.Service
	profileSvc userprofile.Service
	log        *slog.Logger
}

// New builds a client from a JSON datafile payload.
func New(datafileJSON []byte, opts ...Option) (*Client, error) {
	cfg, err := datafile.Parse(datafileJSON)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewYAML builds a client from a YAML datafile payload.
func NewYAML(datafileYAML []byte, opts ...Option) (*Client, error) {
	cfg, err := datafile.ParseYAML(datafileYAML)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig builds a client over an already-parsed configuration.
func NewFromConfig(cfg *datafile.ProjectConfig, opts ...Option) (*Client, error) {
	c := &Client{
		config: cfg,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	svc, err := decision.New(cfg,
		decision.WithLogger(c.log),
		decision.WithProfileService(c.profileSvc))
	if err != nil {
		return nil, err
	}
	c.decisions = svc

	return c, nil
}

// GetVariation returns the key of the variation the user is assigned to, or
// "" when the user is in no variation. The error is non-nil only for an
// unknown experiment key.
func (c *Client) GetVariation(ctx context.Context, experimentKey, userID string, attrs map[string]any) (string, error) {
	d, err := c.decisions.GetVariation(ctx, experimentKey, userID, attrs)
	if err != nil {
		return "", err
	}
	return d.VariationKey, nil
}

// Decide returns the full decision, including ids and the branch that
// produced it.
func (c *Client) Decide(ctx context.Context, experimentKey, userID string, attrs map[string]any) (decision.Decision, error) {
	return c.decisions.GetVariation(ctx, experimentKey, userID, attrs)
}

// SetForcedVariation pins a user to a variation, bypassing all evaluation.
// An empty variation key clears the pin.
func (c *Client) SetForcedVariation(experimentKey, userID, variationKey string) error {
	return c.decisions.SetForcedVariation(experimentKey, userID, variationKey)
}

// GetForcedVariation returns the pinned variation key, or "" when none.
func (c *Client) GetForcedVariation(experimentKey, userID string) (string, error) {
	return c.decisions.GetForcedVariation(experimentKey, userID)
}

// RemoveForcedVariation clears a pin.
func (c *Client) RemoveForcedVariation(experimentKey, userID string) error {
	return c.decisions.RemoveForcedVariation(experimentKey, userID)
}

// OnDecision registers a listener for terminal decisions and returns its id.
func (c *Client) OnDecision(fn func(decision.Notification)) int {
	return c.decisions.OnDecision(fn)
}

// RemoveDecisionListener unregisters a listener.
func (c *Client) RemoveDecisionListener(id int) {
	c.decisions.RemoveListener(id)
}

// ProjectConfig exposes the parsed configuration view.
func (c *Client) ProjectConfig() *datafile.ProjectConfig {
	return c.config
}
