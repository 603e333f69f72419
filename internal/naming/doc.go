// Package naming maps a capture date and source filename to the ordered
// candidate paths under the destination tree.
//
// The destination layout is <dest>/<year>/<month>/<filename>; same-named
// files that differ in content occupy disambiguated slots (<stem>_1.ext,
// <stem>_2.ext, …). The slot counter is deterministic and strictly
// increasing, so a rerun over the same tree probes identical candidates.
package naming
