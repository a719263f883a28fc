package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// CLI TESTS
// ============================================================================

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json"))
	assert.NoError(t, checkFormat("pretty"))

	err := checkFormat("yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")

	assert.Error(t, checkFormat(""))
	assert.Error(t, checkFormat("JSON"))
}

func TestSplitFocus(t *testing.T) {
	column, value, ok := splitFocus("group_2=hockey")
	assert.True(t, ok)
	assert.Equal(t, "group_2", column)
	assert.Equal(t, "hockey", value)

	_, _, ok = splitFocus("no-equals")
	assert.False(t, ok)

	_, _, ok = splitFocus("=hockey")
	assert.False(t, ok)

	_, _, ok = splitFocus("group_2=")
	assert.False(t, ok)
}
