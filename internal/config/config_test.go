// ABOUTME: Tests for gateway configuration parsing
// ABOUTME: Covers defaults, env expansion, duration parsing and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullConfig(t *testing.T) {
	yaml := `
server:
  http_addr: ":9090"
model:
  provider: gemini
  name: gemini-2.5-flash-lite
  api_key: secret
  timeout: 30s
context:
  site_context: "You are a helpful assistant for this site."
  acknowledgement: "Got it."
  history_limit: 50
logging:
  level: debug
  format: json
`
	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "gemini", cfg.Model.Provider)
	assert.Equal(t, "secret", cfg.Model.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Model.Timeout)
	assert.Equal(t, "Got it.", cfg.Context.Acknowledgement)
	assert.Equal(t, 50, cfg.Context.HistoryLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("model:\n  provider: echo\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.Server.HTTPAddr)
	assert.Equal(t, DefaultModelName, cfg.Model.Name)
	assert.Equal(t, DefaultModelTimeout, cfg.Model.Timeout)
}

func TestParse_DefaultAcknowledgementOnlyWithSiteContext(t *testing.T) {
	cfg, err := Parse([]byte("model:\n  provider: echo\ncontext:\n  site_context: about this site\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAcknowledgement, cfg.Context.Acknowledgement)

	cfg, err = Parse([]byte("model:\n  provider: echo\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Context.Acknowledgement)
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("SITECHAT_TEST_KEY", "from-env")

	cfg, err := Parse([]byte("model:\n  provider: gemini\n  api_key: ${SITECHAT_TEST_KEY}\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Model.APIKey)
}

func TestParse_GeminiRequiresAPIKey(t *testing.T) {
	_, err := Parse([]byte("model:\n  provider: gemini\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestParse_UnknownProviderRejected(t *testing.T) {
	_, err := Parse([]byte("model:\n  provider: gpt9\n  api_key: x\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider")
}

func TestParse_BadTimeoutRejected(t *testing.T) {
	_, err := Parse([]byte("model:\n  provider: echo\n  timeout: soon\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestParse_NegativeHistoryLimitRejected(t *testing.T) {
	_, err := Parse([]byte("model:\n  provider: echo\ncontext:\n  history_limit: -1\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "history_limit")
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("model: [oops"))

	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  provider: echo\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "echo", cfg.Model.Provider)
}
