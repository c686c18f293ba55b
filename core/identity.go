package core

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
)

// ValidIdentity reports whether id is a well formed, non-nil principal or asset id
func ValidIdentity(id string) bool {
	u, err := uuid.FromString(id)
	if err != nil {
		return false
	}

	return u != uuid.Nil
}

// CanonicalIdentity the lower case hyphenated form of a uuid identity; roles,
// balances and hashes are keyed by it. Ids that do not parse are returned
// unchanged and fail ValidIdentity later.
func CanonicalIdentity(id string) string {
	u, err := uuid.FromString(strings.TrimSpace(id))
	if err != nil {
		return id
	}

	return u.String()
}

// HashLength bytes of a correlation token
const HashLength = 32

// Hash deterministic correlation token (deposit id / withdrawal id)
type Hash [HashLength]byte

// ParseHash parse a 0x prefixed hex string
func ParseHash(s string) (Hash, error) {
	var h Hash

	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != HashLength*2 {
		return h, fmt.Errorf("hash must be %d hex characters, got %d", HashLength*2, len(raw))
	}

	if _, err := hex.Decode(h[:], []byte(raw)); err != nil {
		return h, err
	}

	return h, nil
}

// IsZero all bytes zero
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Hex 0x prefixed lower case hex
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// MarshalText implements encoding.TextMarshaler
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (h *Hash) UnmarshalText(text []byte) error {
	v, err := ParseHash(string(text))
	if err != nil {
		return err
	}

	*h = v
	return nil
}
