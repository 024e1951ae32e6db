package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/keyran/recipekit/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows immediate first request", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "eda.ru")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same site", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "eda.ru"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "eda.ru")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("limits sites independently", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "eda.ru"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "196flavors.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "eda.ru"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "eda.ru"))
	})

	t.Run("does not limit with zero rate", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0)

		start := time.Now()
		for range 5 {
			require.NoError(t, limiter.Wait(context.Background(), "eda.ru"))
		}

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})
}

func TestDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "eda.ru", crawl.Domain("https://eda.ru/recepty/1"))
	assert.Equal(t, "www.recipetineats.com", crawl.Domain("https://www.recipetineats.com/pad-thai"))
	assert.Equal(t, "not a url", crawl.Domain("not a url"))
}
