package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"process", "pending", "submit", "migrate", "config"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestProcessFlags(t *testing.T) {
	assert.NotNil(t, processCmd.Flags().Lookup("preview"))
	assert.NotNil(t, processCmd.Flags().Lookup("limit"))
	assert.NotNil(t, processCmd.Flags().Lookup("verbose"))
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "", redact(""))
	assert.Equal(t, "***", redact("sk-secret"))
}
