// Package timesync decides when the clock asks the network time source for a
// correction.
//
// # Dual Cadence
//
// Two independent references govern attempts:
//
//   - Primary: an attempt whenever PrimaryInterval (default 10 minutes) has
//     passed since the last primary attempt, regardless of outcome.
//   - Retry: while the most recent attempt failed, an attempt whenever
//     RetryInterval (30 seconds) has passed since the last retry attempt.
//
// A successful retry does not move the primary reference, so a healthy clock
// never syncs more often than the primary cadence and a failed sync is
// retried within about 30 seconds. Between attempts MaybeSync returns the
// cached result without touching the network.
package timesync
