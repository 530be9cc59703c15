package refs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	liberr "github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/objects"
	"github.com/utkarsh5026/libra/pkg/repository/librarepo"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

const (
	shaA = "1234567890abcdef1234567890abcdef12345678"
	shaB = "abcdef1234567890abcdef1234567890abcdef12"
)

func setupTestRepo(t *testing.T) (*RefManager, string) {
	t.Helper()

	tempDir := t.TempDir()
	repo, err := librarepo.Initialize(scpath.RepositoryPath(tempDir), "")
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	return NewRefManager(repo), repo.WorkingDirectory().String()
}

func TestNewRefManager(t *testing.T) {
	rm, root := setupTestRepo(t)

	if got, want := rm.GetRefsPath().String(), filepath.Join(root, scpath.ControlDir, scpath.RefsDir); got != want {
		t.Errorf("refsPath = %s, want %s", got, want)
	}
	if got, want := rm.GetHeadPath().String(), filepath.Join(root, scpath.ControlDir, scpath.HeadFile); got != want {
		t.Errorf("headPath = %s, want %s", got, want)
	}
}

func TestRefManager_UpdateRef(t *testing.T) {
	rm, root := setupTestRepo(t)

	tests := []struct {
		name     string
		ref      scpath.RefPath
		sha      string
		wantFile string
	}{
		{"branch ref", "refs/heads/main", shaA, "refs/heads/main"},
		{"nested branch", "refs/heads/feature/login", shaB, "refs/heads/feature/login"},
		{"tag ref", "refs/tags/v1.0.0", shaA, "refs/tags/v1.0.0"},
		{"uppercase hash is stored lowercase", "refs/heads/upper", "ABCDEF1234567890ABCDEF1234567890ABCDEF12", "refs/heads/upper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := rm.UpdateRef(tt.ref, objects.ObjectHash(tt.sha)); err != nil {
				t.Fatalf("UpdateRef failed: %v", err)
			}

			data, err := os.ReadFile(filepath.Join(root, scpath.ControlDir, tt.wantFile))
			if err != nil {
				t.Fatalf("failed to read ref file: %v", err)
			}
			if want := strings.ToLower(tt.sha) + "\n"; string(data) != want {
				t.Errorf("ref content = %q, want %q", string(data), want)
			}
		})
	}
}

func TestRefManager_UpdateRef_Invalid(t *testing.T) {
	rm, _ := setupTestRepo(t)

	if err := rm.UpdateRef("refs/heads/bad name", objects.ObjectHash(shaA)); !liberr.IsCode(err, liberr.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for bad ref name, got %v", err)
	}
	if err := rm.UpdateRef("refs/heads/main", "xyz"); !liberr.IsCode(err, liberr.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for bad hash, got %v", err)
	}
}

func TestRefManager_ReadRef_NotFound(t *testing.T) {
	rm, _ := setupTestRepo(t)

	_, err := rm.ReadRef("refs/heads/missing")
	if !liberr.IsCode(err, liberr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestRefManager_NamespaceDirectoryIsNotARef(t *testing.T) {
	rm, _ := setupTestRepo(t)

	for _, ref := range []scpath.RefPath{"refs/heads", "refs/tags"} {
		if _, err := rm.ReadRef(ref); !liberr.IsCode(err, liberr.CodeNotFound) {
			t.Errorf("ReadRef(%s): expected NOT_FOUND, got %v", ref, err)
		}
		if _, ok, err := rm.Resolve(ref); err != nil || ok {
			t.Errorf("Resolve(%s) = (%v, %v), want (false, nil)", ref, ok, err)
		}
	}
}

func TestRefManager_ResolveThroughHEAD(t *testing.T) {
	rm, _ := setupTestRepo(t)

	target, ok, err := rm.HeadTarget()
	if err != nil || !ok || target != "refs/heads/master" {
		t.Fatalf("HeadTarget = (%s, %v, %v), want refs/heads/master", target, ok, err)
	}

	// Unborn branch: HEAD points at a ref that does not exist yet.
	if _, ok, err := rm.Resolve(scpath.RefHEAD); err != nil || ok {
		t.Fatalf("Resolve(HEAD) on unborn branch = (%v, %v), want (false, nil)", ok, err)
	}

	if err := rm.UpdateRef("refs/heads/master", objects.ObjectHash(shaA)); err != nil {
		t.Fatalf("UpdateRef failed: %v", err)
	}

	hash, err := rm.ResolveToSHA(scpath.RefHEAD)
	if err != nil {
		t.Fatalf("ResolveToSHA failed: %v", err)
	}
	if hash != objects.ObjectHash(shaA) {
		t.Errorf("HEAD resolved to %s, want %s", hash, shaA)
	}
}

func TestRefManager_ResolveToSHA_Loop(t *testing.T) {
	rm, root := setupTestRepo(t)

	loop := filepath.Join(root, scpath.ControlDir, "refs", "heads", "loop")
	if err := os.WriteFile(loop, []byte("ref: refs/heads/loop\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := rm.ResolveToSHA("refs/heads/loop"); !liberr.IsCode(err, liberr.CodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT for symbolic loop, got %v", err)
	}
}

func TestRefManager_DeleteRef(t *testing.T) {
	rm, _ := setupTestRepo(t)

	if err := rm.UpdateRef("refs/heads/gone", objects.ObjectHash(shaA)); err != nil {
		t.Fatal(err)
	}

	deleted, err := rm.DeleteRef("refs/heads/gone")
	if err != nil || !deleted {
		t.Fatalf("DeleteRef = (%v, %v), want (true, nil)", deleted, err)
	}

	exists, err := rm.Exists("refs/heads/gone")
	if err != nil || exists {
		t.Errorf("ref still exists after delete")
	}

	deleted, err = rm.DeleteRef("refs/heads/gone")
	if err != nil || deleted {
		t.Errorf("second DeleteRef = (%v, %v), want (false, nil)", deleted, err)
	}

	if _, err := rm.DeleteRef(scpath.RefHEAD); err == nil {
		t.Error("deleting HEAD should fail")
	}
}

func TestRefManager_ListRefs(t *testing.T) {
	rm, root := setupTestRepo(t)

	for ref, sha := range map[scpath.RefPath]string{
		"refs/tags/v1":        shaB,
		"refs/heads/main":     shaA,
		"refs/heads/feat/one": shaB,
	} {
		if err := rm.UpdateRef(ref, objects.ObjectHash(sha)); err != nil {
			t.Fatal(err)
		}
	}

	junk := filepath.Join(root, scpath.ControlDir, "refs", "heads", "junk")
	if err := os.WriteFile(junk, []byte("not a hash"), 0644); err != nil {
		t.Fatal(err)
	}

	refs, err := rm.ListRefs()
	if err != nil {
		t.Fatalf("ListRefs failed: %v", err)
	}

	want := []Ref{
		{Name: "refs/heads/feat/one", Hash: shaB},
		{Name: "refs/heads/main", Hash: shaA},
		{Name: "refs/tags/v1", Hash: shaB},
	}
	if len(refs) != len(want) {
		t.Fatalf("ListRefs returned %d refs, want %d: %v", len(refs), len(want), refs)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("refs[%d] = %v, want %v", i, refs[i], want[i])
		}
	}
}
