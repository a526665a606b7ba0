package filekv

import (
	"io/ioutil"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysync/core"
)

var testLogger = core.NewStdLogger(log.New(ioutil.Discard, "", 0))

func TestStore_saveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "studysync.json")

	s, err := NewStore(path, testLogger)
	require.NoError(t, err)
	require.NoError(t, s.Save("studysync_notes", map[string]string{"k": "v"}))

	// a fresh store on the same path sees the saved value
	s2, err := NewStore(path, testLogger)
	require.NoError(t, err)

	notes := make(map[string]string)
	s2.Load("studysync_notes", &notes)
	assert.Equal(t, map[string]string{"k": "v"}, notes)
}

func TestStore_missingKeyKeepsDefault(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "studysync.json"), testLogger)
	require.NoError(t, err)

	notes := map[string]string{"seed": "kept"}
	s.Load("studysync_notes", &notes)
	assert.Equal(t, map[string]string{"seed": "kept"}, notes)
}

func TestStore_corruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studysync.json")
	require.NoError(t, ioutil.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewStore(path, testLogger)
	require.NoError(t, err)

	notes := map[string]string{"seed": "kept"}
	s.Load("studysync_notes", &notes)
	assert.Equal(t, map[string]string{"seed": "kept"}, notes)
}

func TestStore_corruptValueKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studysync.json")

	s, err := NewStore(path, testLogger)
	require.NoError(t, err)
	require.NoError(t, s.Save("studysync_notes", "not a map"))

	notes := map[string]string{"seed": "kept"}
	s.Load("studysync_notes", &notes)
	assert.Equal(t, map[string]string{"seed": "kept"}, notes)
}

func TestStore_partiallyDecodableValueKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studysync.json")

	s, err := NewStore(path, testLogger)
	require.NoError(t, err)
	// "a" decodes into map[string]string, "b" does not; dst must stay whole
	require.NoError(t, s.Save("studysync_notes", map[string]interface{}{"a": "x", "b": 2}))

	notes := map[string]string{"seed": "kept"}
	s.Load("studysync_notes", &notes)
	assert.Equal(t, map[string]string{"seed": "kept"}, notes)
}
