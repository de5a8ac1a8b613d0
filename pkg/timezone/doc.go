// Package timezone holds the static table of zones the clock can display.
//
// Each zone is a pair of transitions in the style of the classic embedded NTP
// clients: the daylight-saving rule says when DST starts and which offset
// applies during it, the standard rule says when it ends. A zone whose two
// offsets are equal has no daylight-saving time.
//
// Zones are addressed by their index in the table, which is what the
// configuration stores. Lookup maps an out-of-range index to zone 0.
package timezone
