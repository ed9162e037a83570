// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/product-autogpt/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, OpenAIKey, "  sk-abc123  \n")
				writeFile(t, dir, AnthropicKey, "sk-ant-xyz")
				return dir
			},
			want: Secrets{
				OpenAIKey:    "sk-abc123",
				AnthropicKey: "sk-ant-xyz",
			},
		},
		{
			name: "returns empty set for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty files, dotfiles, and directories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, OpenAIKey, "valid")
				writeFile(t, dir, "empty-key", "   \n\t ")
				writeFile(t, dir, ".gitkeep", "x")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: Secrets{OpenAIKey: "valid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_PathIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "not-a-dir", "x")

	_, err := Load(filepath.Join(dir, "not-a-dir"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading secrets directory")
}

func TestGet_EnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", " sk-env ")
	t.Setenv("ANTHROPIC_API_KEY", "")

	s := Secrets{AnthropicKey: "sk-file"}
	assert.Equal(t, "sk-env", s.Get(OpenAIKey))
	assert.Equal(t, "sk-file", s.Get(AnthropicKey))
	assert.Equal(t, "", s.Get("unknown"))

	assert.Equal(t, "sk-env", s.APIKeyFor(types.ProviderOpenAI))
	assert.Equal(t, "sk-file", s.APIKeyFor(types.ProviderAnthropic))
}

func TestGet_FilePreferredOverEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	s := Secrets{OpenAIKey: "sk-file"}
	assert.Equal(t, "sk-file", s.Get(OpenAIKey))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}
