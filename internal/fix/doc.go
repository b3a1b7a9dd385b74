// Package fix implements the repository maintenance rewrites behind
// "agskills fix": skill metadata normalization, description quoting, and
// removal of dangling relative links.
//
// Every fixer walks a skills directory, prints one line per change and a
// closing total, and writes files atomically. In dry-run mode nothing is
// written; a unified diff of each change is printed instead.
package fix
