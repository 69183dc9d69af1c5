// Package filesystem holds the file-level building blocks of source tree
// synchronization: scanning the immediate candidates of a root directory and
// merging one directory tree into another.
//
// Everything goes through an afero.Fs so the same code runs against the
// real project tree and against in-memory trees in tests.
package filesystem
