package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	i, ok := Int(3).AsInt()
	assert.True(t, ok)
	assert.EqualValues(t, 3, i)

	_, ok = Int(3).AsString()
	assert.False(t, ok)

	s, ok := String("go").AsString()
	assert.True(t, ok)
	assert.Equal(t, "go", s)

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, InvalidKind, Value{}.Kind())
	assert.Equal(t, "<invalid>", Value{}.String())
	assert.Equal(t, `"go"`, String("go").String())
}

func TestValue_JSON(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Value
	}{
		{raw: `1`, expected: Int(1)},
		{raw: `-7`, expected: Int(-7)},
		{raw: `"text"`, expected: String("text")},
		{raw: `false`, expected: Bool(false)},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &v))
			assert.Equal(t, tc.expected, v)

			data, err := json.Marshal(v)
			require.NoError(t, err)
			assert.JSONEq(t, tc.raw, string(data))
		})
	}

	var v Value
	require.ErrorContains(t, json.Unmarshal([]byte(`1.5`), &v), "is not an integer")
	require.ErrorContains(t, json.Unmarshal([]byte(`[1]`), &v), "unsupported attribute value")

	_, err := json.Marshal(Value{})
	require.Error(t, err)
}

func TestAttributes(t *testing.T) {
	attrs := Attributes{LevelKey: Int(2)}
	clone := attrs.Clone()
	clone[LevelKey] = Int(3)

	assert.Equal(t, Int(2), attrs[LevelKey])
	assert.False(t, attrs.Equal(clone))
	assert.True(t, Attributes(nil).Equal(Attributes{}))
	assert.Nil(t, Attributes{}.Clone())
}
