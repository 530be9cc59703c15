package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// HashLength is the number of hex characters in a full object id
const HashLength = 40

// ZeroID is the all-zero sentinel. As an old value it means "ref does not
// exist yet", as a new value it means "delete this ref".
const ZeroID = "0000000000000000000000000000000000000000"

const abbrevLength = 7

// ObjectHash is a full 40-character hex object id
type ObjectHash string

// ShortHash is a hash prefix as typed by a user
type ShortHash string

// ZeroHash returns ZeroID as an ObjectHash
func ZeroHash() ObjectHash { return ObjectHash(ZeroID) }

// ComputeObjectHash returns the id of content stored under kind.
// The kind is hashed with the bytes, so a blob and a tree with the same
// bytes never share an id.
func ComputeObjectHash(kind ObjectType, content []byte) ObjectHash {
	h := sha1.New()
	h.Write(CreateHeader(kind, int64(len(content))))
	h.Write(content)
	return ObjectHash(hex.EncodeToString(h.Sum(nil)))
}

// NewObjectHashFromString trims and lowercases s and checks it is a full id
func NewObjectHashFromString(s string) (ObjectHash, error) {
	h := ObjectHash(strings.ToLower(strings.TrimSpace(s)))
	if err := h.Validate(); err != nil {
		return "", err
	}
	return h, nil
}

func (h ObjectHash) String() string { return string(h) }

// Validate reports why h is not a full hex id, or nil
func (h ObjectHash) Validate() error {
	if len(h) != HashLength {
		return fmt.Errorf("hash %q: want %d hex digits, got %d", string(h), HashLength, len(h))
	}
	if i := strings.IndexFunc(string(h), notHex); i >= 0 {
		return fmt.Errorf("hash %q: %q is not a hex digit", string(h), h[i])
	}
	return nil
}

func (h ObjectHash) IsValid() bool { return h.Validate() == nil }

func (h ObjectHash) IsZero() bool { return h == ZeroID }

// Short abbreviates h for display
func (h ObjectHash) Short() ShortHash {
	return ShortHash(h[:min(len(h), abbrevLength)])
}

// Equal ignores case
func (h ObjectHash) Equal(other ObjectHash) bool {
	return strings.EqualFold(string(h), string(other))
}

// HasPrefix matches prefix case-insensitively against a lowercase hash
func (h ObjectHash) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(h), strings.ToLower(prefix))
}

// FanOut splits h into the directory and file name of its loose object
func (h ObjectHash) FanOut() (dir, file string) {
	return string(h[:2]), string(h[2:])
}

func (sh ShortHash) String() string { return string(sh) }

// Normalize trims and lowercases the prefix
func (sh ShortHash) Normalize() ShortHash {
	return ShortHash(strings.ToLower(strings.TrimSpace(string(sh))))
}

// IsValid reports whether sh could be the start of some hash
func (sh ShortHash) IsValid() bool {
	return len(sh) > 0 && len(sh) <= HashLength && strings.IndexFunc(string(sh), notHex) < 0
}

func (sh ShortHash) Length() int { return len(sh) }

func (sh ShortHash) Matches(hash ObjectHash) bool { return hash.HasPrefix(string(sh)) }

func notHex(r rune) bool {
	return !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F')
}
