// Package datafile parses an experimentation configuration payload into the
// typed, indexed view the decision engine reads.
//
// A datafile describes a project's experiments, their variations and traffic
// allocations, mutually exclusive groups, and the audiences that gate entry.
// The package accepts the payload as JSON (the canonical delivery format) or
// YAML (convenient for local development fixtures), validates its structural
// invariants, and exposes read-only lookups keyed by id and by key.
//
// # Usage
//
//	import "github.com/dmitrymomot/splitkit/pkg/datafile"
//
//	raw, err := os.ReadFile("datafile.json")
//	if err != nil {
//		// handle error
//	}
//
//	config, err := datafile.Parse(raw)
//	if err != nil {
//		// handle error
//	}
//
//	exp, ok := config.ExperimentByKey("checkout_redesign")
//	if !ok {
//		// unknown experiment
//	}
//	if exp.IsRunning() {
//		// eligible for traffic
//	}
//
// Validation enforces that every traffic allocation keeps its cumulative
// endpoints within [0, 10000] and non-decreasing, and that experiment keys
// are unique across the project (group members included). Variation ids
// referenced by allocation entries are deliberately NOT required to resolve:
// the engine checks those defensively at decision time, because datafiles in
// the wild do carry dangling references.
//
// A ProjectConfig is immutable after Parse returns and safe for concurrent
// readers.
package datafile
