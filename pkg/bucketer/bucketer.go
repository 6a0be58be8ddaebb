package bucketer

import (
	"github.com/twmb/murmur3"

	"github.com/dmitrymomot/splitkit/pkg/datafile"
)

// hashSeed is fixed by the cross-SDK bucketing contract. Changing it would
// silently reshuffle every running experiment.
const hashSeed uint32 = 1

// Value reduces the hashed (bucketingID, parentID) pair to a bucket value in
// [0, 10000). Exposed so determinism can be asserted against known vectors.
func Value(bucketingID, parentID string) int {
	hash := murmur3.SeedStringSum32(hashSeed, bucketingID+parentID)
	return int(hash % datafile.MaxTrafficValue)
}

// Bucket maps a bucketing identifier to the entity owning its slice of the
// allocation table. The table is scanned in order and the first endpoint
// strictly greater than the bucket value wins. ok is false when the value
// falls beyond the last endpoint, i.e. the allocation covers less than 100%
// of traffic.
func Bucket(bucketingID, parentID string, alloc []datafile.TrafficAllocation) (string, bool) {
	value := Value(bucketingID, parentID)
	for _, entry := range alloc {
		if value < entry.EndOfRange {
			return entry.EntityID, true
		}
	}
	return "", false
}
