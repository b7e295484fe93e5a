// Package pathfilter decides which files under a project root are
// eligible for inclusion in a sanitized bundle.
//
// A Set is a disjunction of exclusion rules: a relative path is excluded
// as soon as any single rule matches it, with no ordering or precedence
// between rules. The default matching mode is an unanchored substring
// test ("does the pattern occur anywhere in the path"), which is the
// compatibility behavior of the original bundler. Because substring
// matching is unanchored, a short pattern such as a bare extension can
// exclude paths that merely contain it somewhere else; callers who want
// stricter semantics select MatchGlob or MatchSegment explicitly rather
// than getting a silently upgraded matcher.
package pathfilter
