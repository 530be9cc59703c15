package meta

import "time"

// LocalRepoID is the repo id rows get when the database belongs to a single local repository
const LocalRepoID int64 = 0

// RefRow is a stored reference
type RefRow struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	RepoID        int64  `gorm:"uniqueIndex:idx_repo_ref;not null"`
	RefName       string `gorm:"uniqueIndex:idx_repo_ref;type:varchar(255);not null"`
	RefGitID      string `gorm:"type:char(40);not null"`
	RefType       string `gorm:"type:varchar(16);not null"`
	DefaultBranch bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName pins the table name
func (RefRow) TableName() string {
	return "import_refs"
}

// MergeRequestRow is a stored merge request
type MergeRequestRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	MRLink    string `gorm:"column:mr_link;uniqueIndex;type:varchar(40);not null"`
	Title     string `gorm:"type:text"`
	Status    string `gorm:"index;type:varchar(16);not null"`
	MergeDate *time.Time
	Path      string `gorm:"type:text"`
	FromHash  string `gorm:"type:char(40)"`
	ToHash    string `gorm:"type:char(40)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name
func (MergeRequestRow) TableName() string {
	return "mega_mr"
}
