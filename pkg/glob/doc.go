// Package glob implements binary glob matching over byte slices.
//
// Patterns are anchored at both ends: a match requires the pattern and the
// data to be consumed fully and simultaneously. Supported tokens:
//
//   - '?' matches exactly one arbitrary byte
//   - '*' matches a run of zero or more arbitrary bytes
//   - '[...]' matches one byte against a character class; a leading '^'
//     negates the class, 'a-b' spans a byte range (normalized if a > b),
//     and a literal ']' is allowed as the first class member
//   - '\' matches the next pattern byte literally
//
// The matcher operates on explicit byte slices, never NUL-terminated
// strings, which makes it safe for channel names carrying arbitrary bytes.
package glob
