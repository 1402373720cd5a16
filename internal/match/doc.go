// Package match ranks known names by similarity to a misspelt one, for
// "did you mean" hints on unknown directives, options and commands.
//
// Key functions:
//   - NormalizeIdent: folds case and separators before comparison
//   - Levenshtein: computes edit distance between strings
//   - Rank / Suggest: order candidates and pick an unambiguous best match
package match
