package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/keyran/recipekit/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	t.Run("reports first sighting as unseen", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		assert.False(t, f.Seen("https://eda.ru/recepty/1"))
		assert.True(t, f.Seen("https://eda.ru/recepty/1"))
		assert.False(t, f.Seen("https://eda.ru/recepty/2"))
	})

	t.Run("records the URL", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		assert.False(t, f.Test("https://196flavors.com/borscht"))

		f.Seen("https://196flavors.com/borscht")

		assert.True(t, f.Test("https://196flavors.com/borscht"))
	})

	t.Run("accepts zero expected items", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(0, 0.01)

		assert.False(t, f.Seen("https://eda.ru/recepty/1"))
		assert.True(t, f.Seen("https://eda.ru/recepty/1"))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		var wg sync.WaitGroup
		var mu sync.Mutex
		unseen := 0
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !f.Seen("https://www.recipetineats.com/pad-thai") {
					mu.Lock()
					unseen++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, unseen)
	})
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Seen("https://eda.ru/recepty/1")
	f.Seen("https://eda.ru/recepty/2")
	f.Seen("https://eda.ru/recepty/3")
	f.Seen("https://eda.ru/recepty/3")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testLookups = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Seen(fmt.Sprintf("https://eda.ru/recepty/added/%d", i))
	}

	falsePositives := 0
	for i := range testLookups {
		if f.Test(fmt.Sprintf("https://eda.ru/recepty/other/%d", i)) {
			falsePositives++
		}
	}

	rate := float64(falsePositives) / float64(testLookups)
	assert.Less(t, rate, fpRate*2, "false positive rate %.4f exceeds twice the target", rate)
}
