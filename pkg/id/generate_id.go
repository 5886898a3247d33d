package id

import (
	"encoding/hex"
	"regexp"

	"github.com/google/uuid"
)

var reLockID = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewLockID returns the public id of a day lock audit row: a random (v4) uuid as 32 lowercase hex chars.
func NewLockID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

func ValidLockID(s string) bool { return reLockID.MatchString(s) }
