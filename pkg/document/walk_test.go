package document

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	var visited []string
	err := Walk(testTree(), func(p Path, n *Node) error {
		visited = append(visited, p.String()+":"+string(n.Type()))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{":page", "0:heading", "1:bulleted_list", "1.0:paragraph", "2:divider", "3:paragraph"},
		visited,
	)
}

func TestWalk_SkipChildren(t *testing.T) {
	var visited []string
	err := Walk(testTree(), func(p Path, n *Node) error {
		visited = append(visited, p.String())
		if n.Type() == BulletedListType {
			return SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "0", "1", "2", "3"}, visited)
}

func TestWalk_Error(t *testing.T) {
	errStop := errors.New("stop")
	count := 0
	err := Walk(testTree(), func(Path, *Node) error {
		count++
		if count == 3 {
			return errStop
		}
		return nil
	})
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 3, count)

	require.NoError(t, Walk(nil, func(Path, *Node) error { return errStop }))
}

func TestFindNode(t *testing.T) {
	p, n := FindNode(testTree(), func(n *Node) bool {
		return n.Type() == ParagraphType
	})
	assert.Equal(t, Path{1, 0}, p)
	assert.Equal(t, "nested", n.Delta().String())

	p, n = FindNode(testTree(), func(n *Node) bool { return false })
	assert.Nil(t, p)
	assert.Nil(t, n)
}
