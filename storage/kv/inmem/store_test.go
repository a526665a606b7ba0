package inmemkv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_saveAndLoad(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Save("studysync_notes", map[string]string{"k": "v"}))

	notes := make(map[string]string)
	s.Load("studysync_notes", &notes)
	assert.Equal(t, map[string]string{"k": "v"}, notes)
	assert.Equal(t, []string{"studysync_notes"}, s.Keys())
}

func TestStore_missingKeyKeepsDefault(t *testing.T) {
	s := NewStore()

	notes := map[string]string{"seed": "kept"}
	s.Load("studysync_notes", &notes)
	assert.Equal(t, map[string]string{"seed": "kept"}, notes)
}

func TestStore_partiallyDecodableValueKeepsDefault(t *testing.T) {
	s := NewStore()
	// "a" decodes into map[string]string, "b" does not; dst must stay whole
	require.NoError(t, s.Save("studysync_notes", map[string]interface{}{"a": "x", "b": 2}))

	notes := map[string]string{"seed": "kept"}
	s.Load("studysync_notes", &notes)
	assert.Equal(t, map[string]string{"seed": "kept"}, notes)
}
