package bucketer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/splitkit/pkg/bucketer"
	"github.com/dmitrymomot/splitkit/pkg/datafile"
)

func TestValue(t *testing.T) {
	t.Parallel()

	// Known vectors pinned by the cross-SDK contract. If any of these move,
	// every deployed experiment reshuffles.
	tests := []struct {
		bucketingID string
		parentID    string
		want        int
	}{
		{"test_user", "111127", 4008},
		{"test_user", "111129", 9080},
		{"test_user", "19228", 6927},
		{"sticky_user", "111127", 2042},
		{"group_user", "19228", 9235},
		{"excluded_user", "19228", 1267},
	}

	for _, tt := range tests {
		t.Run(tt.bucketingID+"/"+tt.parentID, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bucketer.Value(tt.bucketingID, tt.parentID))
		})
	}
}

func TestBucket(t *testing.T) {
	t.Parallel()

	alloc := []datafile.TrafficAllocation{
		{EntityID: "111128", EndOfRange: 5000},
		{EntityID: "111129", EndOfRange: 10000},
	}

	t.Run("FirstRange", func(t *testing.T) {
		t.Parallel()
		// Bucket value 4008 < 5000.
		id, ok := bucketer.Bucket("test_user", "111127", alloc)
		require.True(t, ok)
		assert.Equal(t, "111128", id)
	})

	t.Run("SecondRange", func(t *testing.T) {
		t.Parallel()
		// Bucket value 9080 falls past the first endpoint.
		id, ok := bucketer.Bucket("test_user", "111129", alloc)
		require.True(t, ok)
		assert.Equal(t, "111129", id)
	})

	t.Run("EndpointIsExclusive", func(t *testing.T) {
		t.Parallel()
		// Value 4008 with an endpoint of exactly 4008 must NOT match: the
		// contract is strictly-greater-than.
		id, ok := bucketer.Bucket("test_user", "111127", []datafile.TrafficAllocation{
			{EntityID: "a", EndOfRange: 4008},
			{EntityID: "b", EndOfRange: 4009},
		})
		require.True(t, ok)
		assert.Equal(t, "b", id)
	})

	t.Run("Underflow", func(t *testing.T) {
		t.Parallel()
		// Value 4008 exceeds a table covering only the first 10%.
		id, ok := bucketer.Bucket("test_user", "111127", []datafile.TrafficAllocation{
			{EntityID: "111128", EndOfRange: 1000},
		})
		assert.False(t, ok)
		assert.Empty(t, id)
	})

	t.Run("EmptyAllocation", func(t *testing.T) {
		t.Parallel()
		_, ok := bucketer.Bucket("test_user", "111127", nil)
		assert.False(t, ok)
	})

	t.Run("Deterministic", func(t *testing.T) {
		t.Parallel()
		first, ok1 := bucketer.Bucket("user_a", "experiment_1", alloc)
		for range 100 {
			again, ok2 := bucketer.Bucket("user_a", "experiment_1", alloc)
			assert.Equal(t, ok1, ok2)
			assert.Equal(t, first, again)
		}
	})

	t.Run("ParentIDChangesOutcome", func(t *testing.T) {
		t.Parallel()
		// Same user, different parent: 1121 vs 7295.
		id1, ok := bucketer.Bucket("bucket_user", "exp1", alloc)
		require.True(t, ok)
		id2, ok := bucketer.Bucket("bucket_user", "exp2", alloc)
		require.True(t, ok)
		assert.NotEqual(t, id1, id2)
	})
}
