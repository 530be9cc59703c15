package scpath

const (
	// ControlDir is the reserved directory that marks a repository root
	ControlDir = ".libra"
	// ObjectsDir is the name of the objects directory
	ObjectsDir = "objects"
	// RefsDir is the name of the refs directory
	RefsDir = "refs"
	// HeadsDir is the name of the heads directory (branches)
	HeadsDir = "heads"
	// TagsDir is the name of the tags directory
	TagsDir = "tags"
	// HeadFile is the name of the HEAD file
	HeadFile = "HEAD"
	// DatabaseFile is the local metadata database kept inside the control directory
	DatabaseFile = "libra.db"
	// ConfigFile is the name of the repository-level config file
	ConfigFile = "config.yaml"

	// BranchRefPrefix is the namespace of branch references
	BranchRefPrefix = "refs/heads/"
	// TagRefPrefix is the namespace of tag references
	TagRefPrefix = "refs/tags/"
)
