// Package decision orchestrates variation assignment for experiments.
//
// Given an experiment key, a user id, and optional attributes, the Service
// walks a fixed precedence chain and returns the variation the user is
// assigned to, if any:
//
//  1. Resolve the experiment; an unknown key is the caller's
//     misconfiguration and fails the call.
//  2. A non-running experiment assigns nothing.
//  3. A forced variation — set through SetForcedVariation or declared in the
//     datafile's whitelist — wins outright, skipping everything below.
//     A forced variation naming a variation that no longer exists is logged
//     and ignored, and evaluation continues as if it were never set.
//  4. A previously saved decision from the user profile store is returned
//     as-is ("sticky bucketing"), skipping audience checks and bucketing.
//     A stored variation that no longer exists is discarded.
//  5. The experiment's audiences gate entry; anything short of a definite
//     match assigns nothing.
//  6. For members of a mutually exclusive group, the user is first bucketed
//     across the group; losing that draw assigns nothing. Otherwise the user
//     is bucketed within the experiment's own traffic allocation.
//  7. A fresh bucketing decision is merged into the user's profile and
//     saved, best effort.
//
// Every terminal outcome emits exactly one info-level diagnostic through the
// configured logger, and profile store failures surface as error-level
// diagnostics without disturbing the decision.
//
// # Usage
//
//	import (
//		"github.com/dmitrymomot/splitkit/pkg/datafile"
//		"github.com/dmitrymomot/splitkit/pkg/decision"
//	)
//
//	config, err := datafile.Parse(raw)
//	if err != nil {
//		// handle error
//	}
//
//	svc, err := decision.New(config,
//		decision.WithProfileService(profileStore),
//		decision.WithLogger(logger),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	d, err := svc.GetVariation(ctx, "checkout_redesign", "user-42", map[string]any{
//		"browser_type": "firefox",
//	})
//	if err != nil {
//		// unknown experiment
//	}
//	if d.Assigned() {
//		// d.VariationKey holds the assignment
//	}
//
// The Service holds no mutable state besides its own forced-variation table
// and listener registry; decisions for different users, and for the same
// user, run concurrently without locking. Concurrent read-modify-write of
// one user's profile is last-writer-wins by design.
package decision
