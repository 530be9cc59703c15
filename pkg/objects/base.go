package objects

import (
	"fmt"
	"strings"
)

// ObjectType represents the kind of a stored object. The set is closed: the
// store, the persistence layer and the transport all agree on these four
// values, so adding a kind is a coordinated change across every consumer.
type ObjectType string

const (
	BlobType   ObjectType = "blob"
	TreeType   ObjectType = "tree"
	CommitType ObjectType = "commit"
	TagType    ObjectType = "tag"
)

// AllObjectTypes lists every valid kind in a stable order
var AllObjectTypes = []ObjectType{BlobType, TreeType, CommitType, TagType}

// String implements the Stringer interface
func (o ObjectType) String() string {
	return string(o)
}

// IsValid reports whether o is one of the four known kinds
func (o ObjectType) IsValid() bool {
	switch o {
	case BlobType, TreeType, CommitType, TagType:
		return true
	default:
		return false
	}
}

// ParseObjectType converts a string to ObjectType.
// Surrounding whitespace is ignored, case is not.
func ParseObjectType(s string) (ObjectType, error) {
	ot := ObjectType(strings.TrimSpace(s))
	if !ot.IsValid() {
		return "", fmt.Errorf("unknown object type: %s", s)
	}
	return ot, nil
}
