// Package userprofile persists per-user experiment decisions so that a user
// keeps seeing the variation they were first bucketed into ("sticky
// bucketing"), even when traffic allocations change afterwards.
//
// The package defines a small Service contract (Lookup/Save), several
// implementations backed by memory, Redis, Postgres, and MongoDB, and an
// Adapter that the decision engine talks to. The adapter owns the fault
// contract: a failing backend must never abort a decision in progress, so
// every Service error is absorbed, logged at error severity, and treated as
// a cache miss (lookup) or a silent no-op (save).
//
// # Usage
//
//	import "github.com/dmitrymomot/splitkit/pkg/userprofile"
//
//	svc := userprofile.NewMemoryService()
//	adapter := userprofile.NewAdapter(svc, logger)
//
//	profile := adapter.Lookup(ctx, "user-42") // nil on miss or fault
//	if profile == nil {
//		profile = userprofile.New("user-42")
//	}
//	profile.SetVariation("111127", "111128")
//	adapter.Save(ctx, profile) // best effort
//
// A Service implementation reports "no profile" with ErrNotFound; any other
// error is a fault. This keeps the three outcomes — found, absent, broken —
// distinct at the type level without the adapter having to guess.
//
// Redis, Postgres and MongoDB services take an already-connected client;
// connection management, pooling, and timeouts belong to the caller. The
// engine performs no retries: a profile round-trip fails at most once per
// decision.
//
// Concurrent decisions for the same user that read-modify-write a profile
// are last-writer-wins. Serializing those writes, if required, is the
// backend's concern, not this package's.
package userprofile
