package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/marknote/pkg/document"
)

func TestState_Blocks(t *testing.T) {
	s := Load("# Title\n- a\n  - b\n    - c\n- d\n")

	blocks := s.Blocks()
	require.Len(t, blocks, 5)

	var got []string
	for _, b := range blocks {
		got = append(got, b.Path.String()+"@"+string(rune('0'+b.Depth))+":"+b.Node.Delta().String())
	}
	assert.Equal(t, []string{"0@0:Title", "1@0:a", "1.0@1:b", "1.0.0@2:c", "2@0:d"}, got)

	// Every block resolves against the tree it was taken from.
	for _, b := range blocks {
		n, err := document.Resolve(s.Snapshot(), b.Path)
		require.NoError(t, err)
		assert.Same(t, b.Node, n)
	}
}

func TestFlatten(t *testing.T) {
	assert.Empty(t, Flatten(document.Page()))
	assert.Empty(t, Flatten(nil))
	assert.Len(t, Flatten(document.EmptyPage()), 1)
}
