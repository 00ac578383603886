// Package ir provides the canonical data types shared by every layer of
// tabula: the closed prop-value union, game and token definitions, and
// canonical JSON serialization.
//
// This package contains type definitions and serialization only. All other
// internal packages import ir; ir imports nothing internal. This keeps ir
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - NO float types anywhere - prop values are string/int64/bool only
//   - All JSON tags use snake_case
//   - Canonical serialization uses UTF-16 key ordering and NFC-normalized
//     strings so that equal values always produce identical bytes
package ir
