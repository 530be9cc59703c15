package scpath

import (
	"fmt"
	"strings"
)

// RefPath is a reference name: "HEAD", "refs/heads/main", "refs/tags/v1.0.0"
type RefPath string

// RefHEAD is the symbolic reference to the current branch
const RefHEAD RefPath = HeadFile

// refForbidden are substrings git's check-ref-format rejects
var refForbidden = []string{" ", "~", "^", ":", "?", "*", "[", "\\", "..", "@{", "//", "\n", "\t"}

// String returns the reference name
func (rp RefPath) String() string {
	return string(rp)
}

// IsValid applies git's ref-name rules: no control or glob characters, no
// "..", no leading "." or "/", no trailing ".", "/" or ".lock"
func (rp RefPath) IsValid() bool {
	s := string(rp)
	if s == "" {
		return false
	}
	for _, bad := range refForbidden {
		if strings.Contains(s, bad) {
			return false
		}
	}
	if strings.HasSuffix(s, ".lock") || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "/") {
		return false
	}
	return !strings.HasPrefix(s, ".") && !strings.HasPrefix(s, "/")
}

// IsHEAD reports whether rp is HEAD
func (rp RefPath) IsHEAD() bool {
	return rp == RefHEAD
}

// NewBranchRef returns refs/heads/<name>, rejecting names git would reject
func NewBranchRef(name string) (RefPath, error) {
	if name == "" {
		return "", fmt.Errorf("branch name cannot be empty")
	}
	ref := RefPath(BranchRefPrefix + name)
	if !ref.IsValid() {
		return "", fmt.Errorf("invalid branch name: %s", name)
	}
	return ref, nil
}
