package userprofile_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/splitkit/pkg/userprofile"
)

func TestMemoryService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("LookupMissing", func(t *testing.T) {
		t.Parallel()
		svc := userprofile.NewMemoryService()
		profile, err := svc.Lookup(ctx, "nobody")
		require.ErrorIs(t, err, userprofile.ErrNotFound)
		assert.Nil(t, profile)
	})

	t.Run("SaveAndLookup", func(t *testing.T) {
		t.Parallel()
		svc := userprofile.NewMemoryService()

		profile := userprofile.New("test_user")
		profile.SetVariation("111127", "111129")
		require.NoError(t, svc.Save(ctx, profile))

		got, err := svc.Lookup(ctx, "test_user")
		require.NoError(t, err)
		variation, ok := got.Variation("111127")
		require.True(t, ok)
		assert.Equal(t, "111129", variation)
	})

	t.Run("SaveRejectsEmptyUserID", func(t *testing.T) {
		t.Parallel()
		svc := userprofile.NewMemoryService()
		err := svc.Save(ctx, userprofile.New(""))
		assert.ErrorIs(t, err, userprofile.ErrInvalidProfile)
	})

	t.Run("LookupReturnsCopy", func(t *testing.T) {
		t.Parallel()
		svc := userprofile.NewMemoryService()

		profile := userprofile.New("test_user")
		profile.SetVariation("111127", "111129")
		require.NoError(t, svc.Save(ctx, profile))

		first, err := svc.Lookup(ctx, "test_user")
		require.NoError(t, err)
		first.SetVariation("111127", "tampered")

		second, err := svc.Lookup(ctx, "test_user")
		require.NoError(t, err)
		variation, _ := second.Variation("111127")
		assert.Equal(t, "111129", variation)
	})

	t.Run("SaveCopiesInput", func(t *testing.T) {
		t.Parallel()
		svc := userprofile.NewMemoryService()

		profile := userprofile.New("test_user")
		profile.SetVariation("111127", "111129")
		require.NoError(t, svc.Save(ctx, profile))
		profile.SetVariation("111127", "tampered")

		got, err := svc.Lookup(ctx, "test_user")
		require.NoError(t, err)
		variation, _ := got.Variation("111127")
		assert.Equal(t, "111129", variation)
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		t.Parallel()
		svc := userprofile.NewMemoryService()

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				profile := userprofile.New("concurrent_user")
				profile.SetVariation("111127", "111128")
				_ = svc.Save(ctx, profile)
				_, _ = svc.Lookup(ctx, "concurrent_user")
				_ = n
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 1, svc.Len())
	})
}

func TestProfileMergeSemantics(t *testing.T) {
	t.Parallel()

	profile := userprofile.New("test_user")
	profile.SetVariation("111127", "111128")
	profile.SetVariation("122227", "122228")

	// Overwriting one experiment leaves the other intact.
	profile.SetVariation("111127", "111129")
	v, ok := profile.Variation("111127")
	require.True(t, ok)
	assert.Equal(t, "111129", v)
	v, ok = profile.Variation("122227")
	require.True(t, ok)
	assert.Equal(t, "122228", v)

	profile.RemoveVariation("111127")
	_, ok = profile.Variation("111127")
	assert.False(t, ok)
	_, ok = profile.Variation("122227")
	assert.True(t, ok)
}

func TestProfileSetVariationNilMap(t *testing.T) {
	t.Parallel()
	profile := &userprofile.Profile{UserID: "test_user"}
	profile.SetVariation("111127", "111128")
	v, ok := profile.Variation("111127")
	require.True(t, ok)
	assert.Equal(t, "111128", v)
}
