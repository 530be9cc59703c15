// Package pathspec turns user-typed path arguments into working-directory
// paths.
//
// Every argument is first classified as a Directory or a LiteralPath.
// Directories expand to every file beneath them; literal paths are taken
// as written, whether or not they exist. Classification and directory
// reads go through the Classifier and Walker interfaces so the resolver can
// be exercised against an in-memory tree.
//
// The control directory is never listed. Comparison is on cleaned absolute
// forms; on case-insensitive filesystems two spellings of one file are
// still treated as different paths.
package pathspec
