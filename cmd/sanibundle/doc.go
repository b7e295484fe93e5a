// Sanibundle produces a sanitized, shareable snapshot of a project
// directory.
//
// It stages a filtered copy of the tree (skipping caches, logs, binary
// media, databases, and version-control metadata), blanket-redacts
// environment files, redacts sensitive keys in YAML and JSON
// configuration, and packs the result into one ZIP archive suitable
// for support tickets, code review, and audits.
//
// Usage:
//
//	sanibundle bundle                 # bundle the detected project root
//	sanibundle bundle --root <dir>    # bundle an explicit directory
//	sanibundle bundle --match glob    # stricter exclusion matching
//	sanibundle config show            # print the effective configuration
//
// The archive lands at <root>/sanitized_bundle.zip unless --out is given.
package main
