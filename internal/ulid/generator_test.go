package ulid

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{New(), true},
		{"0", false},
		{"invalidulid", false},
		{"01B4E6BXY0PRJ5G420D25MWQY!", false},
		{"01an4z07by79ka1307sr9x4mv3", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, Valid(tt.id))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("sorted", func(t *testing.T) {
		ids := make([]string, 100)
		for i := range ids {
			ids[i] = New()
		}
		assert.True(t, sort.StringsAreSorted(ids))
	})

	t.Run("concurrent uniqueness", func(t *testing.T) {
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			ids = make(map[string]struct{})
		)

		const numIDs = 1000

		wg.Add(numIDs)
		for i := 0; i < numIDs; i++ {
			go func() {
				defer wg.Done()
				id := New()
				mu.Lock()
				defer mu.Unlock()
				ids[id] = struct{}{}
			}()
		}
		wg.Wait()

		assert.Len(t, ids, numIDs)
	})
}

func TestMock(t *testing.T) {
	restore := Mock("01HF7BT3HEQBTBM9SSSJ3T5ZQ5")
	require.Equal(t, "01HF7BT3HEQBTBM9SSSJ3T5ZQ5", New())
	restore()
	require.NotEqual(t, "01HF7BT3HEQBTBM9SSSJ3T5ZQ5", New())
}
