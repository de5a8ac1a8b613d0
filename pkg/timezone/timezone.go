package timezone

import "time"

// Week selects which occurrence of a weekday within a month a transition
// falls on.
type Week uint8

const (
	Last Week = iota
	First
	Second
	Third
	Fourth
)

// String returns the ordinal name.
func (w Week) String() string {
	switch w {
	case Last:
		return "Last"
	case First:
		return "First"
	case Second:
		return "Second"
	case Third:
		return "Third"
	case Fourth:
		return "Fourth"
	default:
		return "Unknown"
	}
}

// Transition describes a switch to one offset. Hour is the local wall-clock
// hour at which the switch happens, measured in the offset in force before it.
type Transition struct {
	Abbrev        string
	Week          Week
	Weekday       time.Weekday
	Month         time.Month
	Hour          int
	OffsetMinutes int
}

// Rule is one entry of the table.
type Rule struct {
	Name string
	DST  Transition
	STD  Transition
}

// DSTAbbrev returns the daylight-saving abbreviation.
func (r Rule) DSTAbbrev() string { return r.DST.Abbrev }

// STDAbbrev returns the standard-time abbreviation.
func (r Rule) STDAbbrev() string { return r.STD.Abbrev }

// DSTOffset returns the daylight-saving UTC offset in minutes.
func (r Rule) DSTOffset() int { return r.DST.OffsetMinutes }

// STDOffset returns the standard-time UTC offset in minutes.
func (r Rule) STDOffset() int { return r.STD.OffsetMinutes }

// HasDST reports whether the zone observes daylight-saving time.
func (r Rule) HasDST() bool {
	return r.DST.OffsetMinutes != r.STD.OffsetMinutes
}

// fixed builds a zone without daylight-saving time.
func fixed(name, abbrev string, offset int) Rule {
	t := Transition{Abbrev: abbrev, Week: First, Weekday: time.Sunday, Month: time.January, OffsetMinutes: offset}
	return Rule{Name: name, DST: t, STD: t}
}

// usRule builds a zone following the US schedule: second Sunday of March to
// first Sunday of November, both at 02:00.
func usRule(name, dst string, dstOffset int, std string, stdOffset int) Rule {
	return Rule{
		Name: name,
		DST:  Transition{dst, Second, time.Sunday, time.March, 2, dstOffset},
		STD:  Transition{std, First, time.Sunday, time.November, 2, stdOffset},
	}
}

// table is indexed by DeviceConfig.TimezoneIndex. Index 0 is the default.
var table = []Rule{
	usRule("US Eastern", "EDT", -240, "EST", -300),
	usRule("US Central", "CDT", -300, "CST", -360),
	usRule("US Mountain", "MDT", -360, "MST", -420),
	fixed("US Arizona", "MST", -420),
	usRule("US Pacific", "PDT", -420, "PST", -480),
	usRule("US Alaska", "AKDT", -480, "AKST", -540),
	fixed("US Hawaii", "HST", -600),
	fixed("UTC", "UTC", 0),
	{
		Name: "United Kingdom",
		DST:  Transition{"BST", Last, time.Sunday, time.March, 1, 60},
		STD:  Transition{"GMT", Last, time.Sunday, time.October, 2, 0},
	},
	{
		Name: "Central Europe",
		DST:  Transition{"CEST", Last, time.Sunday, time.March, 2, 120},
		STD:  Transition{"CET", Last, time.Sunday, time.October, 3, 60},
	},
	{
		Name: "Eastern Europe",
		DST:  Transition{"EEST", Last, time.Sunday, time.March, 3, 180},
		STD:  Transition{"EET", Last, time.Sunday, time.October, 4, 120},
	},
	fixed("India", "IST", 330),
	fixed("Japan", "JST", 540),
	{
		Name: "Australia Eastern",
		DST:  Transition{"AEDT", First, time.Sunday, time.October, 2, 660},
		STD:  Transition{"AEST", First, time.Sunday, time.April, 3, 600},
	},
	{
		Name: "New Zealand",
		DST:  Transition{"NZDT", Last, time.Sunday, time.September, 2, 780},
		STD:  Transition{"NZST", First, time.Sunday, time.April, 3, 720},
	},
}

// Len returns the number of zones in the table.
func Len() int {
	return len(table)
}

// Valid reports whether index addresses a zone.
func Valid(index int) bool {
	return index >= 0 && index < len(table)
}

// Normalize maps an out-of-range index to 0.
func Normalize(index int) int {
	if !Valid(index) {
		return 0
	}
	return index
}

// Lookup returns the zone at index, falling back to index 0.
func Lookup(index int) Rule {
	return table[Normalize(index)]
}

// All returns a copy of the table in index order.
func All() []Rule {
	out := make([]Rule, len(table))
	copy(out, table)
	return out
}
