package update

import (
	"context"
	"strings"

	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/objects"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// Failure messages reported on status lines
const (
	MsgInvalidName    = "invalid ref name"
	MsgAlreadyExists  = "already exists"
	MsgNoSuchRef      = "no such ref"
	MsgStale          = "stale info"
	MsgMissingObjects = "missing necessary objects"
	MsgNotACommit     = "not a commit"
	MsgUpdateFailed   = "failed to update ref"
	MsgCanceled       = "canceled"
)

// RefStore is where commands are applied
type RefStore interface {
	Resolve(ref scpath.RefPath) (objects.ObjectHash, bool, error)
	UpdateRef(ref scpath.RefPath, hash objects.ObjectHash) error
	DeleteRef(ref scpath.RefPath) (bool, error)
}

// ObjectChecker verifies new ref targets before they are written
type ObjectChecker interface {
	Has(hash objects.ObjectHash) (bool, error)
	GetType(hash objects.ObjectHash) (objects.ObjectType, error)
}

// Applier runs a batch of commands against a RefStore
type Applier struct {
	store   RefStore
	objects ObjectChecker
}

// NewApplier creates an Applier. checker may be nil to skip target checks.
func NewApplier(store RefStore, checker ObjectChecker) *Applier {
	return &Applier{store: store, objects: checker}
}

// Apply runs every command in order. A rejected command is marked failed and
// the batch continues; Apply itself never returns early. Commands still
// pending when ctx is done are failed with MsgCanceled.
func (a *Applier) Apply(ctx context.Context, commands []*RefCommand) {
	log := logger.Component(pkgName)

	for _, cmd := range commands {
		if !cmd.IsOK() {
			continue
		}
		if ctx.Err() != nil {
			cmd.Failed(MsgCanceled)
			continue
		}

		a.applyOne(cmd)

		if cmd.IsOK() {
			log.Debug("ref command applied", "ref", cmd.RefName, "type", cmd.Type.String())
		} else {
			log.Debug("ref command rejected", "ref", cmd.RefName, "type", cmd.Type.String(), "reason", cmd.ErrorMessage())
		}
	}
}

func (a *Applier) applyOne(cmd *RefCommand) {
	ref := scpath.RefPath(cmd.RefName)
	if !ref.IsValid() || ref.IsHEAD() || !isUnderRefs(cmd.RefName) {
		cmd.Failed(MsgInvalidName)
		return
	}

	current, exists, e := a.store.Resolve(ref)
	if e != nil {
		cmd.Failed(MsgUpdateFailed)
		return
	}

	switch cmd.Type {
	case Create:
		if exists {
			cmd.Failed(MsgAlreadyExists)
			return
		}
	case Update, Delete:
		if !exists {
			cmd.Failed(MsgNoSuchRef)
			return
		}
		if !current.Equal(cmd.OldID) {
			cmd.Failed(MsgStale)
			return
		}
	}

	if cmd.Type == Delete {
		if _, e := a.store.DeleteRef(ref); e != nil {
			cmd.Failed(MsgUpdateFailed)
		}
		return
	}

	if msg := a.checkTarget(cmd); msg != "" {
		cmd.Failed(msg)
		return
	}

	if e := a.store.UpdateRef(ref, cmd.NewID); e != nil {
		cmd.Failed(MsgUpdateFailed)
	}
}

// checkTarget returns a failure message, or "" when the new target is acceptable.
// Branches must point at commits; tags may point at any stored object.
func (a *Applier) checkTarget(cmd *RefCommand) string {
	if a.objects == nil {
		return ""
	}

	has, e := a.objects.Has(cmd.NewID)
	if e != nil || !has {
		return MsgMissingObjects
	}

	if cmd.RefType == Branch {
		kind, e := a.objects.GetType(cmd.NewID)
		if e != nil {
			return MsgMissingObjects
		}
		if kind != objects.CommitType {
			return MsgNotACommit
		}
	}
	return ""
}

// Report renders one status line per command, in order
func Report(commands []*RefCommand) []string {
	lines := make([]string, len(commands))
	for i, cmd := range commands {
		lines[i] = cmd.Status()
	}
	return lines
}

func isUnderRefs(name string) bool {
	return strings.HasPrefix(name, scpath.RefsDir+"/")
}
