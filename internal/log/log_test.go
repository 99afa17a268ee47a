package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	path := filepath.Join(t.TempDir(), "marknote.log")
	require.NoError(t, Set(path, false))

	Get().Info("transaction applied")
	Get().Debug("hidden at info level")
	Flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transaction applied")
	assert.NotContains(t, string(data), "hidden at info level")
}
