// Package err provides the structured error base shared by every libra package.
//
// Each error carries the originating package, a machine-readable code, the
// operation that failed and an optional wrapped cause. Package-specific error
// types embed *Error and add the fields a caller needs to build an actionable
// message (the offending prefix, path, or candidate list).
//
//	type NotFoundError struct {
//	    baseError *err.Error
//	    Hash      objects.ObjectHash
//	}
//
// Callers match on codes rather than concrete types when they only need the
// category:
//
//	if err.IsCode(e, err.CodeAmbiguousReference) {
//	    // ask the user for a longer prefix
//	}
//
// Codes follow the UPPER_SNAKE_CASE convention. The codes below are the
// complete set surfaced by the object store, the locator and the path
// conversions; retry policy belongs to the caller and is never applied here.
package err
