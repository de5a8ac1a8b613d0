// Package clock implements the mode controller of the clock.
//
// A Controller boots into one of two modes. With stored credentials that
// associate within the retry budget it enters station mode: the zone rule is
// applied to the time source, the sync scheduler starts, the status pages and
// update listener are exposed and the display is rendered once per render
// window. Otherwise it hosts its own network with a captive configuration
// portal.
//
// Restart is a terminal action. Run returns ErrRestart when the configuration
// was saved, the settings were reset, a firmware image was staged or the link
// was lost; the caller builds a fresh Controller and runs it again.
package clock
