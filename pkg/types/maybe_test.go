package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaybe_ZeroValueIsAbsent(t *testing.T) {
	var m Maybe[string]
	v, ok := m.Get()
	assert.False(t, ok)
	assert.Equal(t, "", v)
	assert.False(t, m.Valid())
	assert.Equal(t, Unknown, m.String())
	assert.Equal(t, "fallback", m.Or("fallback"))
}

func TestMaybe_PresentZeroIsDistinct(t *testing.T) {
	zero := Some(uint64(0))
	v, ok := zero.Get()
	assert.True(t, ok)
	assert.Equal(t, uint64(0), v)
	assert.Equal(t, "0", zero.String())

	empty := Some("")
	assert.True(t, empty.Valid())
	assert.Equal(t, "", empty.Or("fallback"))
}

func TestMaybe_None(t *testing.T) {
	assert.Equal(t, Maybe[int]{}, None[int]())
	assert.Equal(t, "200", Some(200).String())
}

func TestMaybe_JSON(t *testing.T) {
	type rec struct {
		RAM  Maybe[uint64] `json:"ram"`
		User Maybe[string] `json:"user"`
	}
	b, err := json.Marshal(rec{RAM: Some(uint64(200))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ram":200,"user":null}`, string(b))

	var back rec
	require.NoError(t, json.Unmarshal([]byte(`{"ram":null,"user":"alice"}`), &back))
	assert.False(t, back.RAM.Valid())
	assert.Equal(t, "alice", back.User.Or(""))

	assert.Error(t, json.Unmarshal([]byte(`{"ram":"x"}`), &back))
}
