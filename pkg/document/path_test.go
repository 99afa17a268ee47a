package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	p := Path{2, 0}

	assert.False(t, p.IsRoot())
	assert.True(t, Path{}.IsRoot())
	assert.Equal(t, Path{2}, p.Parent())
	assert.Equal(t, Path{}, Path{}.Parent())
	assert.Equal(t, 0, p.Last())
	assert.Equal(t, -1, Path{}.Last())
	assert.Equal(t, Path{2, 0, 1}, p.Child(1))
	assert.True(t, p.HasPrefix(Path{2}))
	assert.True(t, p.HasPrefix(Path{}))
	assert.False(t, p.HasPrefix(Path{1}))
	assert.False(t, Path{2}.HasPrefix(p))
	assert.Equal(t, "2.0", p.String())
	assert.Equal(t, "", Path{}.String())
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	parent := make(Path, 1, 4)
	a := parent.Child(1)
	b := parent.Child(2)
	assert.Equal(t, Path{0, 1}, a)
	assert.Equal(t, Path{0, 2}, b)

	c := parent.Parent()
	c = append(c, 7)
	assert.Equal(t, Path{0}, parent)
	assert.Equal(t, Path{7}, c)
}

func TestParsePath(t *testing.T) {
	testCases := []struct {
		input    string
		expected Path
		err      bool
	}{
		{input: "", expected: Path{}},
		{input: "0", expected: Path{0}},
		{input: "2.0.13", expected: Path{2, 0, 13}},
		{input: "1..2", err: true},
		{input: "-1", err: true},
		{input: "a", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			p, err := ParsePath(tc.input)
			if tc.err {
				require.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
			assert.Equal(t, tc.input, p.String())
		})
	}
}

func TestResolve(t *testing.T) {
	root := testTree()

	n, err := Resolve(root, Path{})
	require.NoError(t, err)
	assert.Same(t, root, n)

	n, err = Resolve(root, Path{1, 0})
	require.NoError(t, err)
	assert.Equal(t, "nested", n.Delta().String())

	_, err = Resolve(root, Path{1, 5})
	require.ErrorIs(t, err, ErrInvalidPath)
	require.EqualError(t, err, "node not found at path [1.5] (failed at index 5, step 1): invalid path")

	_, err = Resolve(root, Path{-1})
	require.ErrorIs(t, err, ErrInvalidPath)

	_, err = Resolve(nil, Path{0})
	require.ErrorIs(t, err, ErrInvalidPath)
}
