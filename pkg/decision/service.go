package decision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/splitkit/pkg/audience"
	"github.com/dmitrymomot/splitkit/pkg/bucketer"
	"github.com/dmitrymomot/splitkit/pkg/datafile"
	"github.com/dmitrymomot/splitkit/pkg/userprofile"
)

// Config is the read-only configuration view the service consumes. It is
// satisfied by *datafile.ProjectConfig and must not change during the
// service's lifetime.
type Config interface {
	ExperimentByKey(key string) (datafile.Experiment, bool)
	ExperimentByID(id string) (datafile.Experiment, bool)
	GroupByID(id string) (datafile.Group, bool)
	AudienceByID(id string) (datafile.Audience, bool)
}

// BucketFunc is the deterministic bucketing hook. The default is
// bucketer.Bucket; overriding it supports custom allocation schemes and lets
// tests observe bucketer invocations.
type BucketFunc func(bucketingID, parentID string, alloc []datafile.TrafficAllocation) (string, bool)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the diagnostics sink. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithProfileService enables sticky bucketing through the given store.
func WithProfileService(svc userprofile.Service) Option {
	return func(s *Service) {
		s.profileSvc = svc
	}
}

// WithBucketFunc replaces the default bucketing algorithm. Nil funcs are
// ignored.
func WithBucketFunc(fn BucketFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.bucket = fn
		}
	}
}

type forcedKey struct {
	experimentID string
	userID       string
}

// Service decides variation assignment. Create one per parsed configuration;
// it is safe for concurrent use.
type Service struct {
	config     Config
	bucket     BucketFunc
	profiles   *userprofile.Adapter
	profileSvc userprofile.Service
	log        *slog.Logger

	mu     sync.RWMutex
	forced map[forcedKey]string

	listenerMu   sync.RWMutex
	listeners    map[int]func(Notification)
	nextListener int
}

// New creates a decision service over the given configuration view.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	s := &Service{
		config:    cfg,
		bucket:    bucketer.Bucket,
		log:       slog.New(slog.DiscardHandler),
		forced:    make(map[forcedKey]string),
		listeners: make(map[int]func(Notification)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.profiles = userprofile.NewAdapter(s.profileSvc, s.log)

	return s, nil
}

// GetVariation walks the precedence chain for one (experiment, user) pair.
// The returned Decision has an empty VariationID when the user is assigned
// no variation; err is non-nil only for an unknown experiment key.
func (s *Service) GetVariation(ctx context.Context, experimentKey, userID string, attrs map[string]any) (Decision, error) {
	exp, ok := s.config.ExperimentByKey(experimentKey)
	if !ok {
		return Decision{}, errors.Join(ErrExperimentNotFound, fmt.Errorf("key %q", experimentKey))
	}

	d := Decision{ExperimentID: exp.ID, ExperimentKey: exp.Key, UserID: userID}

	if !exp.IsRunning() {
		s.log.InfoContext(ctx, fmt.Sprintf("experiment %q is not running", exp.Key),
			slog.String("experiment_key", exp.Key))
		d.Reason = ReasonNotRunning
		return s.finish(d, attrs), nil
	}

	// Direct-API overrides outrank the datafile's own whitelist.
	forcedVariationKey, hasForced := s.forcedVariationKey(exp.ID, userID)
	if !hasForced {
		forcedVariationKey, hasForced = exp.WhitelistedKey(userID)
	}
	if hasForced {
		if v, ok := exp.VariationByKey(forcedVariationKey); ok {
			s.log.InfoContext(ctx,
				fmt.Sprintf("user %q is whitelisted into variation %q of experiment %q", userID, v.Key, exp.Key),
				slog.String("user_id", userID),
				slog.String("experiment_key", exp.Key),
				slog.String("variation_key", v.Key))
			d.VariationID, d.VariationKey, d.Reason = v.ID, v.Key, ReasonWhitelisted
			return s.finish(d, attrs), nil
		}
		// Stale override: logged on every call, never cleared, never cached.
		s.log.InfoContext(ctx,
			fmt.Sprintf("user %q is whitelisted into variation %q which is not in the datafile", userID, forcedVariationKey),
			slog.String("user_id", userID),
			slog.String("experiment_key", exp.Key),
			slog.String("variation_key", forcedVariationKey))
	}

	profile := s.profiles.Lookup(ctx, userID)
	if profile != nil {
		if variationID, ok := profile.Variation(exp.ID); ok {
			if v, ok := exp.Variation(variationID); ok {
				s.log.InfoContext(ctx,
					fmt.Sprintf("returning previously activated variation %q of experiment %q for user %q from user profile",
						v.Key, exp.Key, userID),
					slog.String("user_id", userID),
					slog.String("experiment_key", exp.Key),
					slog.String("variation_key", v.Key))
				d.VariationID, d.VariationKey, d.Reason = v.ID, v.Key, ReasonSticky
				return s.finish(d, attrs), nil
			}
			// The stored variation no longer exists; rebucket, keeping the
			// profile's entries for other experiments for the merge on save.
			profile.RemoveVariation(exp.ID)
		}
	}

	if len(exp.AudienceIDs) > 0 && !s.matchesAudience(exp, attrs) {
		s.log.InfoContext(ctx,
			fmt.Sprintf("user %q does not meet the conditions to be in experiment %q", userID, exp.Key),
			slog.String("user_id", userID),
			slog.String("experiment_key", exp.Key))
		d.Reason = ReasonAudienceMismatch
		return s.finish(d, attrs), nil
	}

	if exp.GroupID != "" && exp.GroupPolicy == datafile.PolicyRandom {
		if group, ok := s.config.GroupByID(exp.GroupID); ok {
			routed, ok := s.bucket(userID, group.ID, group.TrafficAllocation)
			if !ok || routed != exp.ID {
				s.log.InfoContext(ctx,
					fmt.Sprintf("user %q is not in experiment %q of group %s", userID, exp.Key, group.ID),
					slog.String("user_id", userID),
					slog.String("experiment_key", exp.Key),
					slog.String("group_id", group.ID))
				d.Reason = ReasonGroupExcluded
				return s.finish(d, attrs), nil
			}
		}
	}

	variationID, ok := s.bucket(userID, exp.ID, exp.TrafficAllocation)
	if !ok {
		s.log.InfoContext(ctx,
			fmt.Sprintf("user %q is in no variation of experiment %q", userID, exp.Key),
			slog.String("user_id", userID),
			slog.String("experiment_key", exp.Key))
		d.Reason = ReasonNoTraffic
		return s.finish(d, attrs), nil
	}
	v, ok := exp.Variation(variationID)
	if !ok {
		// Allocation entries may reference variations that no longer exist.
		s.log.InfoContext(ctx,
			fmt.Sprintf("user %q is in no variation of experiment %q", userID, exp.Key),
			slog.String("user_id", userID),
			slog.String("experiment_key", exp.Key))
		d.Reason = ReasonNoTraffic
		return s.finish(d, attrs), nil
	}

	s.log.InfoContext(ctx,
		fmt.Sprintf("user %q is in variation %q of experiment %q", userID, v.Key, exp.Key),
		slog.String("user_id", userID),
		slog.String("experiment_key", exp.Key),
		slog.String("variation_key", v.Key))
	d.VariationID, d.VariationKey, d.Reason = v.ID, v.Key, ReasonBucketed

	if profile == nil {
		profile = userprofile.New(userID)
	}
	profile.SetVariation(exp.ID, v.ID)
	s.profiles.Save(ctx, profile)

	return s.finish(d, attrs), nil
}

// matchesAudience reports a definite match against any of the experiment's
// audiences. Unresolvable audience ids contribute nothing, so an experiment
// gated only by dangling references admits nobody.
func (s *Service) matchesAudience(exp datafile.Experiment, attrs map[string]any) bool {
	conds := make([]audience.Condition, 0, len(exp.AudienceIDs))
	for _, id := range exp.AudienceIDs {
		if aud, ok := s.config.AudienceByID(id); ok {
			conds = append(conds, aud.Conditions)
		}
	}
	return audience.Match(conds, attrs)
}

func (s *Service) finish(d Decision, attrs map[string]any) Decision {
	s.notify(d, attrs)
	return d
}
