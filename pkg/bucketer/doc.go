// Package bucketer deterministically assigns bucketing identifiers to
// entities in a cumulative traffic-allocation table.
//
// The assignment must be reproducible across SDK implementations in other
// languages, so the algorithm is fixed: the bucketing identifier and the
// parent entity id are concatenated and hashed with murmur3 (x86, 32-bit,
// seed 1), and the hash is reduced modulo 10000 to a bucket value. The first
// allocation entry whose endpoint strictly exceeds the bucket value wins; if
// the table does not cover the value, the identifier is unallocated.
//
//	import "github.com/dmitrymomot/splitkit/pkg/bucketer"
//
//	variationID, ok := bucketer.Bucket("user-42", experiment.ID, experiment.TrafficAllocation)
//	if !ok {
//		// user falls outside the experiment's traffic
//	}
//
// Bucket is a pure function: no state, no I/O, identical inputs always
// produce the identical result.
package bucketer
