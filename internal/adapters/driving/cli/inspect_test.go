package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

func TestInspectCmd_Use(t *testing.T) {
	assert.Equal(t, "inspect <docid>", inspectCmd.Use)
}

func TestInspectCmd_ShowsDocument(t *testing.T) {
	env := setupTestServices(t)
	path := env.write(t, "fox.txt", "The quick brown fox")
	_, err := runCmd(t, "index", env.docs)
	require.NoError(t, err)

	out, err := runCmd(t, "inspect", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Document 1")
	assert.Contains(t, out, "0: \""+path+"\"")
	assert.Contains(t, out, "fox wdf=1 [3]")
	assert.Contains(t, out, "Q"+path)
}

func TestInspectCmd_JSONOutput(t *testing.T) {
	env := setupTestServices(t)
	path := env.write(t, "fox.txt", "The quick brown fox")
	_, err := runCmd(t, "index", env.docs)
	require.NoError(t, err)

	out, err := runCmd(t, "inspect", "--json", "1")
	require.NoError(t, err)

	var got documentJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint32(1), got.ID)
	assert.Equal(t, path, got.Data)
	assert.Equal(t, path, got.Values["0"])
	assert.NotEmpty(t, got.Terms)
}

func TestInspectCmd_InvalidID(t *testing.T) {
	setupTestServices(t)

	for _, arg := range []string{"0", "abc", "-1"} {
		_, err := runCmd(t, "inspect", "--", arg)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, arg)
	}
}

func TestInspectCmd_MissingDocument(t *testing.T) {
	env := setupTestServices(t)
	env.seed(t)

	_, err := runCmd(t, "inspect", "99")

	assert.ErrorIs(t, err, domain.ErrNativeFailure)
}
