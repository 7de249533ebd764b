package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcomandos(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", cmd.Name())

	cmd, _, err = rootCmd.Find([]string{"user", "create"})
	require.NoError(t, err)
	assert.Equal(t, "create", cmd.Name())
	assert.Equal(t, "USER", cmd.Flags().Lookup("role").DefValue)
}

func TestUserCreate_FlagsObligatorios(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"user", "create", "--name", "sin-email"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}
