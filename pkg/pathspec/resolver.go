package pathspec

import (
	"io/fs"
	"sort"

	"github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/repository/librarepo"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

const pkgName = "pathspec"

// Resolver expands and filters pathspecs for one repository context
type Resolver struct {
	ctx        *librarepo.RepositoryContext
	classifier Classifier
	walker     Walker
}

// NewResolver creates a Resolver backed by the real filesystem
func NewResolver(ctx *librarepo.RepositoryContext) *Resolver {
	return NewResolverWith(ctx, OSClassifier{}, OSWalker{})
}

// NewResolverWith creates a Resolver with injected filesystem capabilities
func NewResolverWith(ctx *librarepo.RepositoryContext, classifier Classifier, walker Walker) *Resolver {
	return &Resolver{ctx: ctx, classifier: classifier, walker: walker}
}

// Classify resolves an argument against the current directory and tags it
func (r *Resolver) Classify(input string) (Spec, error) {
	abs, e := r.ctx.Abs(input)
	if e != nil {
		return Spec{}, e
	}

	kind, e := r.classifier.Classify(abs)
	if e != nil {
		return Spec{}, err.WrapWithCode(e, pkgName, err.CodeIOFailure, "classify")
	}

	return Spec{Input: input, Abs: abs, Kind: kind}, nil
}

// ListFiles returns every file beneath root as a working-directory path.
//
// Directories are descended depth-first with entries in name order, so two
// calls over an unchanged tree return the same sequence. The control
// directory is skipped wherever it appears; if root is the control
// directory the result is empty. A symlink is listed when it points at a
// regular file; links to directories and dangling links are skipped, so the
// walk never leaves the tree and cannot loop.
func (r *Resolver) ListFiles(root scpath.AbsolutePath) ([]scpath.RelativePath, error) {
	if root.Base() == scpath.ControlDir || scpath.IsSubPath(root, r.ctx.ControlDir().ToAbsolutePath()) {
		return nil, nil
	}

	base, e := r.ctx.ToWorkdir(root.String())
	if e != nil {
		return nil, e
	}
	if base == "." {
		base = ""
	}

	var files []scpath.RelativePath
	if e := r.walk(root, base, &files); e != nil {
		return nil, e
	}
	return files, nil
}

// ListWorkdirFiles lists every file in the working tree
func (r *Resolver) ListWorkdirFiles() ([]scpath.RelativePath, error) {
	return r.ListFiles(scpath.AbsolutePath(r.ctx.WorkingRoot()))
}

func (r *Resolver) walk(dir scpath.AbsolutePath, rel scpath.RelativePath, out *[]scpath.RelativePath) error {
	entries, e := r.walker.ReadDir(dir)
	if e != nil {
		return err.WrapWithCode(e, pkgName, err.CodeIOFailure, "list_files")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		child := joinRel(rel, name)

		switch {
		case entry.IsDir():
			if name == scpath.ControlDir {
				continue
			}
			if e := r.walk(dir.Join(name), child, out); e != nil {
				return e
			}
		case entry.Type().IsRegular():
			*out = append(*out, child)
		case entry.Type()&fs.ModeSymlink != 0:
			target, e := r.walker.Stat(dir.Join(name))
			if e != nil || !target.Mode().IsRegular() {
				logger.Component(pkgName).Debug("symlink skipped", "path", child.String())
				continue
			}
			*out = append(*out, child)
		}
	}
	return nil
}

// Integrate expands inputs into a deduplicated set of working-directory paths.
// Directories contribute every file beneath them; anything else is
// normalized and included whether or not it exists.
func (r *Resolver) Integrate(inputs []string) (PathSet, error) {
	set := make(PathSet)

	for _, input := range inputs {
		spec, e := r.Classify(input)
		if e != nil {
			return nil, e
		}

		switch spec.Kind {
		case Directory:
			files, e := r.ListFiles(spec.Abs)
			if e != nil {
				return nil, e
			}
			set.Add(files...)
		case LiteralPath:
			rel, e := r.ctx.ToWorkdir(spec.Abs.String())
			if e != nil {
				return nil, e
			}
			set.Add(rel)
		}
	}

	logger.Component(pkgName).Debug("pathspec integrated", "inputs", len(inputs), "paths", set.Len())
	return set, nil
}

// FilterToSubtrees keeps the paths that are equal to, or nested under, at
// least one of allowed. allowed entries may be absolute or relative to the
// current directory. Order of paths is preserved. An allowed entry or path
// that cannot be converted fails the whole call.
func (r *Resolver) FilterToSubtrees(paths []scpath.RelativePath, allowed []string) ([]scpath.RelativePath, error) {
	bases := make([]scpath.AbsolutePath, 0, len(allowed))
	for _, a := range allowed {
		abs, e := r.ctx.Abs(a)
		if e != nil {
			return nil, e
		}
		bases = append(bases, abs)
	}

	var kept []scpath.RelativePath
	for _, p := range paths {
		abs, e := r.ctx.FromWorkdir(p)
		if e != nil {
			return nil, e
		}
		for _, base := range bases {
			if scpath.IsSubPath(abs, base) {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept, nil
}

func joinRel(parent scpath.RelativePath, name string) scpath.RelativePath {
	if parent == "" {
		return scpath.RelativePath(name)
	}
	return scpath.RelativePath(parent.String() + "/" + name)
}
