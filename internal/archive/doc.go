// Package archive compresses a staged tree into a single portable ZIP.
//
// Entry names are forward-slash paths relative to the staged root, so
// the scratch directory's absolute location never leaks into the
// artifact. Creation is all-or-nothing: the archive is written to a
// temporary sibling of the destination and renamed into place only
// after it is complete, so a failed run leaves no partial archive at
// the destination path.
package archive
