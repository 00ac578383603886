// Package engine implements the tabula rule resolver and game manager.
//
// The engine is the heart of tabula - it owns one game's token tree and
// state value, resolves declarative rules against state transitions and
// submitted moves, and materializes pending choices.
//
// ARCHITECTURE:
//
// Single game instance, single-threaded:
// Every operation (rule resolution, tree mutation, choice evaluation) runs
// to completion synchronously. There is no background processing and no
// blocking I/O. Callers must serialize moves themselves.
//
// Resolution flow:
//  1. Start() enters the "!initial" state and resolves entry rules
//  2. Rules return declarative Ops: change state, advertise choices,
//     constrain choices
//  3. A ChangeState op replaces the state wholesale and recursively
//     re-resolves entry rules; all other ops from that pass are discarded
//  4. Otherwise AddChoices ops become the advertised move templates and
//     FilterChoices ops become the active constraint set
//  5. A caller drives a Choice to completion and hands it to PerformMove,
//     which resolves choice-trigger rules against it
//
// CRITICAL PATTERNS:
//
// Deterministic resolution order:
// Applicable rules run in reverse declaration order, deduplicated by name
// (the latest declaration of a name wins). No randomness outside the
// injectable shuffle source, no concurrency, no non-determinism.
//
// Logical clock:
// Every state transition and performed move is stamped with a monotonic
// seq counter from Clock.Next(). NEVER wall-clock timestamps.
//
// Cascades:
// ChangeState resolution recurses synchronously with no depth bound by
// default, exactly like the rule sets it hosts; WithMaxCascade opts into a
// guard that fails the triggering call instead of exhausting the stack.
package engine
