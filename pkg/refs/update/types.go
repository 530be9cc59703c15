package update

import (
	"strings"

	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// tagNamespace is scpath.TagRefPrefix without its trailing slash. Kind
// classification matches on it, so "refs/tags" itself is a tag.
var tagNamespace = strings.TrimSuffix(scpath.TagRefPrefix, "/")

// Wire status words
const (
	StatusOK     = "ok"
	StatusFailed = "ng"
)

// Separator between fields of a status line
const SP = " "

// CommandType is what a RefCommand does to its ref
type CommandType int

const (
	// Create makes a ref that does not exist yet (old id is zero)
	Create CommandType = iota
	// Update moves an existing ref from old id to new id
	Update
	// Delete removes a ref (new id is zero)
	Delete
)

// String returns the command type name
func (c CommandType) String() string {
	switch c {
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// RefType is the namespace a ref lives in
type RefType string

const (
	Branch RefType = "branch"
	Tag    RefType = "tag"
)

// ClassifyRef derives the ref type from its name.
// Only the tag prefix is special; remotes, notes and anything else count as branches.
func ClassifyRef(refName string) RefType {
	if strings.HasPrefix(refName, tagNamespace) {
		return Tag
	}
	return Branch
}
