// Package softtimer provides the polling timer primitives used by the clock.
//
// All waiting in the control loop is done by comparing the current monotonic
// time since boot against a stored reference, never by sleeping. This package
// keeps that subtraction in one place:
//
//	if softtimer.HasElapsed(last, interval, now) { ... }
//
// A Gate wraps one reference and fires at most once per interval. A Clock
// supplies the monotonic "now"; SystemClock is used at runtime and Manual in
// tests.
package softtimer
