package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optionalBody struct {
	Genre Optional[string] `json:"genre,omitzero"`
	Year  Optional[int]    `json:"release_year,omitzero"`
}

func TestOptional_UnmarshalDistinguishesAbsentNullAndValue(t *testing.T) {
	var body optionalBody
	require.NoError(t, json.Unmarshal([]byte(`{"genre": null, "release_year": 1995}`), &body))

	assert.True(t, body.Genre.Set)
	assert.True(t, body.Genre.Null)
	assert.False(t, body.Genre.HasValue())
	assert.Nil(t, body.Genre.Ptr())

	assert.True(t, body.Year.HasValue())
	require.NotNil(t, body.Year.Ptr())
	assert.Equal(t, 1995, *body.Year.Ptr())

	var empty optionalBody
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.False(t, empty.Genre.Set)
	assert.False(t, empty.Year.Set)
}

func TestOptional_UnmarshalRejectsWrongType(t *testing.T) {
	var body optionalBody
	assert.Error(t, json.Unmarshal([]byte(`{"release_year": "soon"}`), &body))
}

func TestOptional_MarshalOmitsAbsentKeepsNull(t *testing.T) {
	out, err := json.Marshal(optionalBody{Genre: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"genre": null}`, string(out))

	out, err = json.Marshal(optionalBody{Year: Some(2001)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"release_year": 2001}`, string(out))
}

func TestOptionalFromPtr(t *testing.T) {
	assert.False(t, OptionalFromPtr[int](nil).Set)
	v := 3
	assert.Equal(t, Some(3), OptionalFromPtr(&v))
}
