package err

// Codes surfaced across packages. Callers branch on these, not on messages.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidReference   = "INVALID_REFERENCE"   // a prefix matched nothing
	CodeAmbiguousReference = "AMBIGUOUS_REFERENCE" // a prefix matched several objects
	CodeNotARepository     = "NOT_A_REPOSITORY"
	CodePathConversion     = "PATH_CONVERSION" // no relative form, e.g. different volumes
	CodeIOFailure          = "IO_FAILURE"
	CodeTypeMismatch       = "TYPE_MISMATCH" // object exists with the wrong kind
	CodeConflict           = "CONFLICT"      // transition not allowed from the current state
	CodeInvalidFormat      = "INVALID_FORMAT"
)
