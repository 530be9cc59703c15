package meta

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/mr"
	"github.com/utkarsh5026/libra/pkg/refs/update"
)

// Repository runs every query against the metadata database.
// Callers exchange domain values; rows never leave this package's conversions.
type Repository struct {
	db *DB
}

// NewRepository creates a Repository over db
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveRefs upserts refs for repoID, keyed by ref name
func (r *Repository) SaveRefs(ctx context.Context, repoID int64, refs []update.Refs) error {
	if len(refs) == 0 {
		return nil
	}

	rows := make([]RefRow, len(refs))
	for i, ref := range refs {
		rows[i] = RowFromRefs(repoID, ref)
		rows[i].ID = 0
	}

	e := r.db.Conn().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "repo_id"}, {Name: "ref_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"ref_git_id", "ref_type", "default_branch", "updated_at"}),
	}).Create(&rows).Error
	if e != nil {
		return dbFailure("save_refs", e)
	}

	logger.Component(pkgName).Debug("refs saved", "repo_id", repoID, "count", len(rows))
	return nil
}

// ApplyCommands mirrors the successful commands of a transaction:
// deletes remove the row, creates and updates upsert it.
func (r *Repository) ApplyCommands(ctx context.Context, repoID int64, commands []*update.RefCommand) error {
	return r.db.Conn().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := &Repository{db: NewWithConn(tx)}
		for _, cmd := range commands {
			if !cmd.IsOK() {
				continue
			}
			if cmd.Type == update.Delete {
				if e := scoped.DeleteRef(ctx, repoID, cmd.RefName); e != nil && !isNotFound(e) {
					return e
				}
				continue
			}
			if e := scoped.SaveRefs(ctx, repoID, []update.Refs{update.RefsFromCommand(cmd)}); e != nil {
				return e
			}
		}
		return nil
	})
}

// ListRefs returns every ref of repoID ordered by name
func (r *Repository) ListRefs(ctx context.Context, repoID int64) ([]update.Refs, error) {
	var rows []RefRow
	e := r.db.Conn().WithContext(ctx).
		Where("repo_id = ?", repoID).
		Order("ref_name").
		Find(&rows).Error
	if e != nil {
		return nil, dbFailure("list_refs", e)
	}

	out := make([]update.Refs, len(rows))
	for i, row := range rows {
		out[i] = RefsFromRow(row)
	}
	return out, nil
}

// FindRef looks up one ref by name
func (r *Repository) FindRef(ctx context.Context, repoID int64, name string) (update.Refs, error) {
	var row RefRow
	e := r.db.Conn().WithContext(ctx).
		Where("repo_id = ? AND ref_name = ?", repoID, name).
		First(&row).Error
	if errors.Is(e, gorm.ErrRecordNotFound) {
		return update.Refs{}, NewNotFoundError("find_ref", "ref", name)
	}
	if e != nil {
		return update.Refs{}, dbFailure("find_ref", e)
	}
	return RefsFromRow(row), nil
}

// DeleteRef removes one ref by name
func (r *Repository) DeleteRef(ctx context.Context, repoID int64, name string) error {
	result := r.db.Conn().WithContext(ctx).
		Where("repo_id = ? AND ref_name = ?", repoID, name).
		Delete(&RefRow{})
	if result.Error != nil {
		return dbFailure("delete_ref", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("delete_ref", "ref", name)
	}
	return nil
}

// SaveMergeRequest inserts m when it has no ID yet (and assigns one),
// otherwise updates its mutable fields.
func (r *Repository) SaveMergeRequest(ctx context.Context, m *mr.MergeRequest) error {
	row := RowFromMergeRequest(m)
	conn := r.db.Conn().WithContext(ctx)

	if row.ID == 0 {
		if e := conn.Create(&row).Error; e != nil {
			return dbFailure("save_mr", e)
		}
		m.ID = row.ID
		logger.Component(pkgName).Debug("merge request created", "id", m.ID, "link", m.Link)
		return nil
	}

	row.UpdatedAt = time.Now().UTC()
	result := conn.Model(&MergeRequestRow{ID: row.ID}).
		Select("title", "status", "merge_date", "path", "from_hash", "to_hash", "updated_at").
		Updates(&row)
	if result.Error != nil {
		return dbFailure("save_mr", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("save_mr", "merge request", m.Link)
	}
	return nil
}

// GetMergeRequest looks up a merge request by its link
func (r *Repository) GetMergeRequest(ctx context.Context, link string) (*mr.MergeRequest, error) {
	var row MergeRequestRow
	e := r.db.Conn().WithContext(ctx).Where("mr_link = ?", link).First(&row).Error
	if errors.Is(e, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("get_mr", "merge request", link)
	}
	if e != nil {
		return nil, dbFailure("get_mr", e)
	}
	return MergeRequestFromRow(row)
}

// ListMergeRequests returns merge requests in creation order.
// An empty status lists all of them.
func (r *Repository) ListMergeRequests(ctx context.Context, status mr.Status) ([]*mr.MergeRequest, error) {
	query := r.db.Conn().WithContext(ctx).Order("id")
	if status != "" {
		query = query.Where("status = ?", status.String())
	}

	var rows []MergeRequestRow
	if e := query.Find(&rows).Error; e != nil {
		return nil, dbFailure("list_mr", e)
	}

	out := make([]*mr.MergeRequest, 0, len(rows))
	for _, row := range rows {
		m, e := MergeRequestFromRow(row)
		if e != nil {
			return nil, e
		}
		out = append(out, m)
	}
	return out, nil
}

func isNotFound(e error) bool {
	var nf *NotFoundError
	return errors.As(e, &nf)
}
