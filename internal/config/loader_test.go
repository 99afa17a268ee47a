package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewLoader(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		NewLoader("", fstest.MapFS{})
	}, "config name is not set")
}

func TestLoader_RootConfig(t *testing.T) {
	t.Parallel()

	t.Run("without root config", func(t *testing.T) {
		t.Parallel()

		loader := NewLoader("marknote", fstest.MapFS{}, WithLogger(zaptest.NewLogger(t)))
		result, err := loader.RootConfig()
		require.ErrorIs(t, err, ErrRootConfigNotFound)
		require.Nil(t, result)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"marknote.yaml": {
				Data: []byte("version: v1alpha1\nmarkdown:\n  indent: 4\n"),
			},
		}
		loader := NewLoader("marknote", fsys, WithLogger(zaptest.NewLogger(t)))
		result, err := loader.RootConfig()
		require.NoError(t, err)
		require.Equal(t, 4, result.Markdown.Indent)
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"marknote.toml": {
				Data: []byte("version = \"v1alpha1\"\n\n[markdown]\nindent = 3\n"),
			},
		}
		loader := NewLoader("marknote", fsys, WithLogger(zaptest.NewLogger(t)))
		result, err := loader.RootConfig()
		require.NoError(t, err)
		require.Equal(t, 3, result.Markdown.Indent)
	})

	t.Run("yaml before toml", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"marknote.yaml": {Data: []byte("version: v1alpha1\nmarkdown:\n  indent: 4\n")},
			"marknote.toml": {Data: []byte("version = \"v1alpha1\"\n\n[markdown]\nindent = 3\n")},
		}
		loader := NewLoader("marknote", fsys, WithLogger(zaptest.NewLogger(t)))
		result, err := loader.RootConfig()
		require.NoError(t, err)
		require.Equal(t, 4, result.Markdown.Indent)
	})

	t.Run("invalid root config", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"marknote.yaml": {Data: []byte("version: v2\n")},
		}
		loader := NewLoader("marknote", fsys, WithLogger(zaptest.NewLogger(t)))
		_, err := loader.RootConfig()
		require.EqualError(t, err, "unknown version: v2")
	})
}
