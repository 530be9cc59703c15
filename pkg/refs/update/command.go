package update

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/objects"
)

const pkgName = "update"

// RefCommand is one create/update/delete of a named ref, as sent by a peer.
// It starts ok and can be failed once; the first failure message is kept.
type RefCommand struct {
	RefName       string
	OldID         objects.ObjectHash
	NewID         objects.ObjectHash
	Type          CommandType
	RefType       RefType
	DefaultBranch bool

	status   string
	errorMsg string
}

// ClassifyCommand derives the command type from the zero sentinel.
// A zero old id wins over a zero new id.
func ClassifyCommand(oldID, newID objects.ObjectHash) CommandType {
	switch {
	case oldID.IsZero():
		return Create
	case newID.IsZero():
		return Delete
	default:
		return Update
	}
}

// NewRefCommand builds a pending command; its kinds are derived, never passed in
func NewRefCommand(oldID, newID objects.ObjectHash, refName string) *RefCommand {
	return &RefCommand{
		RefName: refName,
		OldID:   oldID,
		NewID:   newID,
		Type:    ClassifyCommand(oldID, newID),
		RefType: ClassifyRef(refName),
		status:  StatusOK,
	}
}

// ParseCommandLine parses "<old-id> <new-id> <ref-name>"
func ParseCommandLine(line string) (*RefCommand, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, err.New(pkgName, err.CodeInvalidFormat, "parse", fmt.Sprintf("expected '<old> <new> <ref>', got %q", line), nil)
	}

	oldID, e := objects.NewObjectHashFromString(fields[0])
	if e != nil {
		return nil, err.New(pkgName, err.CodeInvalidFormat, "parse", "bad old id", e)
	}
	newID, e := objects.NewObjectHashFromString(fields[1])
	if e != nil {
		return nil, err.New(pkgName, err.CodeInvalidFormat, "parse", "bad new id", e)
	}

	return NewRefCommand(oldID, newID, fields[2]), nil
}

// Failed marks the command as rejected. Later calls keep the first message.
// Newlines are flattened so the status line stays one line.
func (c *RefCommand) Failed(msg string) {
	if c.status == StatusFailed {
		return
	}
	c.status = StatusFailed
	c.errorMsg = strings.ReplaceAll(msg, "\n", " ")
}

// IsOK reports whether the command has not failed
func (c *RefCommand) IsOK() bool {
	return c.status != StatusFailed
}

// ErrorMessage returns the failure message, empty while ok
func (c *RefCommand) ErrorMessage() string {
	return c.errorMsg
}

// Status renders the status line: "ok <ref>" or "ng <ref> <message>".
// The trailing newline belongs to the transport.
func (c *RefCommand) Status() string {
	if c.IsOK() {
		return StatusOK + SP + c.RefName
	}
	return StatusFailed + SP + c.RefName + SP + c.errorMsg
}

// Refs is a ref as exchanged with the persistence layer
type Refs struct {
	ID            int64
	RefName       string
	RefHash       objects.ObjectHash
	DefaultBranch bool
}

// RefsFromCommand projects the post-transaction state of a command
func RefsFromCommand(c *RefCommand) Refs {
	return Refs{
		RefName:       c.RefName,
		RefHash:       c.NewID,
		DefaultBranch: c.DefaultBranch,
	}
}

// RefType derives the ref kind from the name
func (r Refs) RefType() RefType {
	return ClassifyRef(r.RefName)
}
