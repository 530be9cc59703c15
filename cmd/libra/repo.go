package main

import (
	"context"
	"errors"
	"strings"

	"github.com/utkarsh5026/libra/pkg/meta"
	"github.com/utkarsh5026/libra/pkg/objects"
	"github.com/utkarsh5026/libra/pkg/repository/librarepo"
	"github.com/utkarsh5026/libra/pkg/repository/refs"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
	"github.com/utkarsh5026/libra/pkg/store"
)

// openRepository locates the repository enclosing the working directory
func (o *globalOptions) openRepository() (*librarepo.SourceRepository, error) {
	return librarepo.Find(librarepo.NewLocator())
}

// openMeta opens the repository's metadata database. The caller closes it.
func (o *globalOptions) openMeta(ctx context.Context, repo *librarepo.SourceRepository) (*meta.Repository, func(), error) {
	cfg := o.config()

	db, err := meta.Open(ctx, cfg.DatabasePath(repo.SourceDirectory()), meta.Options{LogSQL: cfg.Database.LogSQL})
	if err != nil {
		return nil, nil, err
	}
	return meta.NewRepository(db), func() { _ = db.Close() }, nil
}

// resolveRevision turns a user-typed name into a hash. Ref names are tried
// first in git's order (exact, refs/, refs/tags/, refs/heads/); anything
// else is treated as an abbreviated hash.
func resolveRevision(repo *librarepo.SourceRepository, rev string) (objects.ObjectHash, error) {
	manager := refs.NewRefManager(repo)

	for _, candidate := range []string{rev, scpath.RefsDir + "/" + rev, scpath.TagRefPrefix + rev, scpath.BranchRefPrefix + rev} {
		ref := scpath.RefPath(candidate)
		if !ref.IsValid() || (!ref.IsHEAD() && !isRefName(candidate)) {
			continue
		}
		hash, ok, err := manager.Resolve(ref)
		if err != nil {
			return "", err
		}
		if ok {
			return hash, nil
		}
	}

	return repo.Objects().ResolveUnique(rev)
}

// resolveCommit is resolveRevision restricted to commits
func resolveCommit(repo *librarepo.SourceRepository, rev string) (objects.ObjectHash, error) {
	hash, err := resolveRevision(repo, rev)
	if err != nil {
		return "", err
	}

	kind, err := repo.ObjectStore().GetType(hash)
	if err != nil {
		var notFound *store.NotFoundError
		if errors.As(err, &notFound) {
			return "", store.NewInvalidReferenceError(rev)
		}
		return "", err
	}
	if kind != objects.CommitType {
		return "", store.NewNotACommitError(rev, kind)
	}
	return hash, nil
}

func isRefName(name string) bool {
	return strings.HasPrefix(name, scpath.RefsDir+"/")
}
