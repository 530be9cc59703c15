package meta

import (
	"github.com/utkarsh5026/libra/pkg/mr"
	"github.com/utkarsh5026/libra/pkg/objects"
	"github.com/utkarsh5026/libra/pkg/refs/update"
)

// RefsFromRow converts a stored row into a transfer ref
func RefsFromRow(row RefRow) update.Refs {
	return update.Refs{
		ID:            row.ID,
		RefName:       row.RefName,
		RefHash:       objects.ObjectHash(row.RefGitID),
		DefaultBranch: row.DefaultBranch,
	}
}

// RowFromRefs converts a transfer ref into a row for repoID
func RowFromRefs(repoID int64, refs update.Refs) RefRow {
	return RefRow{
		ID:            refs.ID,
		RepoID:        repoID,
		RefName:       refs.RefName,
		RefGitID:      refs.RefHash.String(),
		RefType:       string(refs.RefType()),
		DefaultBranch: refs.DefaultBranch,
	}
}

// RowFromRefCommand records the state a command leaves its ref in.
// The row is new: its ID is assigned on insert.
func RowFromRefCommand(repoID int64, cmd *update.RefCommand) RefRow {
	return RefRow{
		RepoID:        repoID,
		RefName:       cmd.RefName,
		RefGitID:      cmd.NewID.String(),
		RefType:       string(cmd.RefType),
		DefaultBranch: cmd.DefaultBranch,
	}
}

// MergeRequestFromRow converts a stored row into a merge request
func MergeRequestFromRow(row MergeRequestRow) (*mr.MergeRequest, error) {
	status, e := mr.ParseStatus(row.Status)
	if e != nil {
		return nil, e
	}

	return &mr.MergeRequest{
		ID:        row.ID,
		Link:      row.MRLink,
		Title:     row.Title,
		Status:    status,
		MergeDate: row.MergeDate,
		Path:      row.Path,
		FromHash:  objects.ObjectHash(row.FromHash),
		ToHash:    objects.ObjectHash(row.ToHash),
	}, nil
}

// RowFromMergeRequest converts a merge request into a row
func RowFromMergeRequest(m *mr.MergeRequest) MergeRequestRow {
	return MergeRequestRow{
		ID:        m.ID,
		MRLink:    m.Link,
		Title:     m.Title,
		Status:    m.Status.String(),
		MergeDate: m.MergeDate,
		Path:      m.Path,
		FromHash:  m.FromHash.String(),
		ToHash:    m.ToHash.String(),
	}
}
