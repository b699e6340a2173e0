package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpperUUID(t *testing.T) {
	s := NewUpperUUID()
	assert.Equal(t, strings.ToUpper(s), s)
	u, err := uuid.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), u.Version())
	assert.NotEqual(t, s, NewUpperUUID())
}

func TestNew_IsULID(t *testing.T) {
	s := New()
	_, err := ulid.ParseStrict(s)
	require.NoError(t, err)
	assert.Len(t, s, 26)
}
