// Package display turns the time of day into commands for a 4-digit segment
// display.
//
// # Layout
//
// Positions 0-3 are the digits HH:MM. The colon is the separator segment of
// positions 1 and 2. Positions 4 and 5 drive two indicator LEDs that share
// AM/PM and sync health:
//
//	isPM  syncOK  pos 4  pos 5
//	no    yes     2      0
//	yes   yes     0      2
//	no    no      6      0
//	yes   no      0      6
//
// Pattern 2 lights the indicator, 6 adds the alert segment.
//
// Render is a pure function of the time and sync health; Renderer adds the
// blink phase and issues the frame to a Driver.
package display
