package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguagesCmd_ListsStemmers(t *testing.T) {
	out, err := runCmd(t, "languages")

	require.NoError(t, err)
	assert.Contains(t, out, "english")
	assert.Contains(t, out, "kraaij_pohlmann")
	assert.Contains(t, out, "Dutch (Kraaij-Pohlmann)")
	assert.NotContains(t, out, "none")
}
