// Package splitkit is a client-side experimentation SDK: it deterministically
// assigns users to experiment variations and keeps those assignments sticky
// across calls through a pluggable profile store.
//
// The root package is a thin facade over the engine packages:
//
//   - pkg/datafile parses the configuration payload into a read-only view
//   - pkg/bucketer maps users onto traffic allocations with murmur3
//   - pkg/audience evaluates targeting condition trees
//   - pkg/userprofile persists sticky decisions (memory, Redis, Postgres, MongoDB)
//   - pkg/decision orchestrates the precedence chain
//
// # Usage
//
//	import "github.com/dmitrymomot/splitkit"
//
//	raw, err := os.ReadFile("datafile.json")
//	if err != nil {
//		// handle error
//	}
//
//	client, err := splitkit.New(raw,
//		splitkit.WithUserProfileService(userprofile.NewMemoryService()),
//		splitkit.WithLogger(logger),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	variation, err := client.GetVariation(ctx, "checkout_redesign", "user-42", map[string]any{
//		"browser_type": "firefox",
//	})
//	if err != nil {
//		// unknown experiment key
//	}
//	switch variation {
//	case "treatment":
//		// new flow
//	default:
//		// control, or "" when the user is not in the experiment
//	}
//
// For environment-driven setup, NewFromEnv reads SPLITKIT_DATAFILE,
// SPLITKIT_LOG_LEVEL and SPLITKIT_LOG_FORMAT (optionally from a .env file)
// and builds a client with a matching slog logger.
//
// A Client is immutable apart from its forced-variation table and decision
// listeners; all methods are safe for concurrent use.
package splitkit
