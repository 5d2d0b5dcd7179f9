// Package clock abstracts time so the sync store, poller and simulated
// backend can be driven deterministically in tests.
//
// Real wraps the time package. Fake stands still until Advance is called;
// After and NewTicker register waiters that fire when the fake time passes
// their deadline. WaitForTimers lets a test wait until a goroutine has
// registered its waiter before advancing, which removes the usual sleep-based
// flakiness around simulated latency and poll intervals.
package clock
