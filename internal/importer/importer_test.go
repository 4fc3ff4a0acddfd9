package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milinsoft/bankapp/internal/money"
)

func TestRegistry_DispatchByExtension(t *testing.T) {
	reg := DefaultRegistry(dateLayout, money.RoundHalfUp)

	assert.NotNil(t, reg.Get("csv"))
	assert.NotNil(t, reg.Get("CSV"))
	assert.Nil(t, reg.Get("jpeg"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newTestParser())
	assert.Panics(t, func() {
		reg.Register(newTestParser())
	})
}

func TestParseFile(t *testing.T) {
	reg := DefaultRegistry(dateLayout, money.RoundHalfUp)

	drafts, err := reg.ParseFile("../../testdata/transactions.csv", 3)
	require.NoError(t, err)
	assert.Len(t, drafts, 7)
	assert.Equal(t, int64(3), drafts[0].AccountID)
}

func TestParseFile_UnsupportedFormat(t *testing.T) {
	reg := DefaultRegistry(dateLayout, money.RoundHalfUp)

	path := filepath.Join(t.TempDir(), "statement.jpeg")
	require.NoError(t, os.WriteFile(path, []byte("not a statement"), 0o644))

	_, err := reg.ParseFile(path, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFile_MissingFile(t *testing.T) {
	reg := DefaultRegistry(dateLayout, money.RoundHalfUp)

	_, err := reg.ParseFile(filepath.Join(t.TempDir(), "nope.csv"), 1)
	require.Error(t, err)
}
