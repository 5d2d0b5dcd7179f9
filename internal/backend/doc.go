// Package backend provides Simulated, the in-memory stand-in for the issue
// service the board synchronizes with.
//
// Simulated honors the repository contract the sync store consumes:
//
//   - Fetch returns the whole collection after a configurable latency. When
//     more than LiveUpdateEvery has passed since the last unsolicited edit,
//     it rolls LiveUpdateChance and, on success, changes the status,
//     priority or assignee of one random issue first. Fetch never fails
//     except for context cancellation.
//   - Update waits the same latency, rejects the write with
//     ErrUpdateRejected at FailureRate, and otherwise applies the patch and
//     returns the fully merged record. Unknown ids yield ErrNotFound.
//
// Latency is measured on an injected clock.Clock and randomness comes from an
// injected *rand.Rand, so tests can pin down every branch with a fake clock
// and a fixed seed, or disable a behavior by zeroing its option.
//
// Seed data is either DefaultIssues or a JSONC file read by LoadSeed; JSONC
// lets hand-maintained seed files carry comments and trailing commas.
package backend
