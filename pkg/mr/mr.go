// Package mr holds the merge request lifecycle.
//
// A merge request starts Open and moves once, to Closed or to Merged.
// Both are terminal. Closing an already closed request is a no-op; any
// other transition out of a terminal state is an error.
package mr

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/objects"
)

const pkgName = "mr"

// Status is where a merge request is in its lifecycle
type Status string

const (
	Open   Status = "open"
	Closed Status = "closed"
	Merged Status = "merged"
)

// ParseStatus parses a status name, case-insensitively
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case Open, Closed, Merged:
		return st, nil
	default:
		return "", err.New(pkgName, err.CodeInvalidInput, "parse_status", fmt.Sprintf("unknown merge request status %q", s), nil)
	}
}

// IsTerminal reports whether no transition leaves this status
func (s Status) IsTerminal() bool {
	return s == Closed || s == Merged
}

// String returns the status name
func (s Status) String() string {
	return string(s)
}

// MergeRequest proposes moving Path from FromHash to ToHash
type MergeRequest struct {
	ID        int64
	Link      string
	Title     string
	Status    Status
	MergeDate *time.Time
	Path      string
	FromHash  objects.ObjectHash
	ToHash    objects.ObjectHash
}

// now is the clock used by Merge
var now = func() time.Time { return time.Now().UTC() }

// New creates an open merge request with a fresh link slug.
// ID stays zero until the request is persisted.
func New(title, path string, from, to objects.ObjectHash) *MergeRequest {
	return &MergeRequest{
		Link:     NewLink(),
		Title:    title,
		Status:   Open,
		Path:     path,
		FromHash: from,
		ToHash:   to,
	}
}

// NewLink returns a short random slug identifying a merge request
func NewLink() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Close moves an open request to Closed
func (m *MergeRequest) Close() error {
	switch m.Status {
	case Open:
		m.Status = Closed
		return nil
	case Closed:
		return nil
	default:
		return NewTerminalStateError("close", m)
	}
}

// Merge moves an open request to Merged and stamps MergeDate with the current UTC time
func (m *MergeRequest) Merge() error {
	return m.MergeAt(now())
}

// MergeAt is Merge with an explicit timestamp
func (m *MergeRequest) MergeAt(at time.Time) error {
	if m.Status != Open {
		return NewTerminalStateError("merge", m)
	}
	m.Status = Merged
	m.MergeDate = &at
	return nil
}

// TerminalStateError is returned for a transition out of Closed or Merged
type TerminalStateError struct {
	baseError *err.Error
	Link      string
	Status    Status
}

// NewTerminalStateError creates a new terminal state error
func NewTerminalStateError(op string, m *MergeRequest) error {
	return &TerminalStateError{
		baseError: err.New(pkgName, err.CodeConflict, op, fmt.Sprintf("merge request %s is already %s", m.Link, m.Status), nil),
		Link:      m.Link,
		Status:    m.Status,
	}
}

// Error implements the error interface
func (e *TerminalStateError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *TerminalStateError) Unwrap() error {
	return e.baseError
}
