package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/academia/ledger"
)

func resetGlobalConfig() {
	globalConfig = defaultConfig()
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test-academia.yaml")
	err := os.WriteFile(tmpFile, []byte(content), 0o644)
	require.NoError(t, err, "failed to write config file")
	return tmpFile
}

func TestLoad_CompareFullStruct(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
databasePath: "/var/lib/academia"
blobPlugin: "badger"
metadataPlugin: "sqlite"
shutdownTimeout: "10s"
signer: "0101010101010101010101010101010101010101010101010101010101010101"
tracing: true
tracingStdout: true
reviewNotices: true
ledger:
  highRankCode: "9999"
  professorCode: "8888"
  studentCode: "7777"
  baseExtraVotes: 5
  votingPeriod: 86400
  rewardAmount: 15
  minSubjectCode: 100
  maxSubjectCode: 99999
`
	cfg, err := LoadConfig(writeConfigFile(t, yamlContent))
	require.NoError(t, err)

	expected := &Config{
		DatabasePath:    "/var/lib/academia",
		BlobPlugin:      "badger",
		MetadataPlugin:  "sqlite",
		ShutdownTimeout: "10s",
		Signer:          "0101010101010101010101010101010101010101010101010101010101010101",
		Tracing:         true,
		TracingStdout:   true,
		ReviewNotices:   true,
		Ledger: ledger.Params{
			HighRankCode:   "9999",
			ProfessorCode:  "8888",
			StudentCode:    "7777",
			BaseExtraVotes: 5,
			VotingPeriod:   86400,
			RewardAmount:   15,
			MinSubjectCode: 100,
			MaxSubjectCode: 99999,
		},
	}
	assert.Equal(t, expected, cfg)
}

func TestLoad_ConfigSection(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
config:
  databasePath: "nested"
database:
  metadata:
    plugin: "postgres"
`
	cfg, err := LoadConfig(writeConfigFile(t, yamlContent))
	require.NoError(t, err)
	assert.Equal(t, "nested", cfg.DatabasePath)
	assert.Equal(t, "postgres", cfg.MetadataPlugin)
	assert.Equal(t, DefaultBlobPlugin, cfg.BlobPlugin)
	// Untouched values keep their defaults
	assert.Equal(t, ledger.DefaultParams(), cfg.Ledger)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	resetGlobalConfig()
	t.Setenv("ACADEMIA_DATABASE_PATH", "/env/path")
	t.Setenv("ACADEMIA_DATABASE_BLOB_PLUGIN", "badger")
	t.Setenv("ACADEMIA_LEDGER_REWARD_AMOUNT", "50")
	t.Setenv("ACADEMIA_LEDGER_STUDENT_CODE", "4444")
	yamlContent := `
databasePath: "/file/path"
ledger:
  rewardAmount: 20
`
	cfg, err := LoadConfig(writeConfigFile(t, yamlContent))
	require.NoError(t, err)
	assert.Equal(t, "/env/path", cfg.DatabasePath)
	assert.Equal(t, uint64(50), cfg.Ledger.RewardAmount)
	assert.Equal(t, "4444", cfg.Ledger.StudentCode)
	assert.Equal(t, ledger.DefaultProfessorCode, cfg.Ledger.ProfessorCode)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	resetGlobalConfig()
	_, err := LoadConfig(writeConfigFile(t, `shutdownTimeout: "soon"`))
	require.Error(t, err)

	resetGlobalConfig()
	_, err = LoadConfig(writeConfigFile(t, `shutdownTimeout: "-1s"`))
	require.Error(t, err)
}

func TestLoad_TracingStdoutRequiresTracing(t *testing.T) {
	resetGlobalConfig()
	_, err := LoadConfig(writeConfigFile(t, `tracingStdout: true`))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	resetGlobalConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestShutdownTimeoutDuration(t *testing.T) {
	cfg := &Config{}
	d, err := cfg.ShutdownTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, "30s", d.String())
}

func TestContextRoundTrip(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	cfg := defaultConfig()
	ctx := WithContext(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))
}
