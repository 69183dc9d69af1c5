// Package srctree applies the template operations of a build configuration
// to the C project source tree.
//
// Candidate files and directories come from two universes: the paths the
// user supplied explicitly and the session's generated-output directory.
// User candidates are always matched first, so a user-supplied network.c
// shadows the generated one. A user directory literally named "generated"
// (the output folder of a previous run) is expanded one level so its
// content joins the user universe.
//
// Unmatched operations are not an error: the synchronizer warns with the
// keys it could not apply, unless strict mode is enabled.
package srctree
