package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(out *bytes.Buffer) *App {
	app := NewApp("aws-test")
	app.Out = out
	app.Err = out
	return app
}

// TestRootCommandVersion verifies --version short-circuits the run func.
func TestRootCommandVersion(t *testing.T) {
	var out bytes.Buffer
	ran := false
	cmd := NewRootCommand(testApp(&out), "aws-test", "test", "", func(*cobra.Command, []string) error {
		ran = true
		return nil
	})
	cmd.SetArgs([]string{"--version", "--config", writeConfig(t, "cost:\n  days: 30\n")})

	require.NoError(t, cmd.Execute())
	assert.False(t, ran)
	assert.Contains(t, out.String(), "aws-test version")
}

// TestRootCommandLoadsSettings verifies the config file reaches Settings.
func TestRootCommandLoadsSettings(t *testing.T) {
	var out bytes.Buffer
	app := testApp(&out)
	cmd := NewRootCommand(app, "aws-test", "test", "", func(*cobra.Command, []string) error {
		assert.Equal(t, 90, app.Settings.CostDays)
		assert.Equal(t, "t3.small", app.Settings.InstanceType)
		return nil
	})
	cmd.SetArgs([]string{"--config", writeConfig(t, "cost:\n  days: 90\nec2:\n  instance_type: t3.small\n")})

	require.NoError(t, cmd.Execute())
}

// TestRootCommandMissingConfig verifies an explicit missing file fails.
func TestRootCommandMissingConfig(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand(testApp(&out), "aws-test", "test", "", func(*cobra.Command, []string) error { return nil })
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})

	assert.Error(t, cmd.Execute())
}

// TestErrorLine verifies AWS error codes are surfaced.
func TestErrorLine(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "ExpiredToken", Message: "token expired"}
	wrapped := fmt.Errorf("failed to get caller identity: %w", apiErr)

	assert.Equal(t, "[ExpiredToken] "+wrapped.Error(), ErrorLine(wrapped))
	assert.Equal(t, "boom", ErrorLine(errors.New("boom")))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "awskit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
