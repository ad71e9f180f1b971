package main

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	old := Version
	Version = "1.2.3"
	t.Cleanup(func() { Version = old })

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ophelia version 1.2.3\n", out)
}

func TestRejectsUnknownBackend(t *testing.T) {
	_, err := execute(t, "--backend", "curses")
	assert.ErrorContains(t, err, `unknown backend "curses"`)
}

func TestRejectsBadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud")
	assert.ErrorContains(t, err, "log level")
}

func TestRejectsArguments(t *testing.T) {
	_, err := execute(t, "notes.txt")
	assert.Error(t, err)
}

func TestBindFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("backend", "tcell"))

	v := viper.New()
	require.NoError(t, bindFlags(v, cmd.Flags()))
	assert.Equal(t, "tcell", v.GetString("backend"))
	assert.Equal(t, "info", v.GetString("log.level"))
}

func TestBindFlagsMissingFlag(t *testing.T) {
	flags := pflag.NewFlagSet("ophelia", pflag.ContinueOnError)
	flags.String("backend", "ansi", "")

	err := bindFlags(viper.New(), flags)
	assert.ErrorContains(t, err, "failed to bind flag")
}
