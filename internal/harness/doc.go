// Package harness executes conformance scenarios against a game: scripted
// moves loaded from YAML, assertions on the resulting state, and golden
// snapshots of the canonical tree rendering.
//
// Scenarios keep game-behavior tests declarative: a rule change that
// alters play shows up as a scenario diff or a golden diff, not as a
// hand-maintained assertion drift.
package harness
