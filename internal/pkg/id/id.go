package id

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable
// by creation time and safe for use as DynamoDB partition keys.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// NewUpperUUID returns a random v4 UUID in upper case, the format clients
// already use for notification document ids.
func NewUpperUUID() string {
	return strings.ToUpper(uuid.NewString())
}
