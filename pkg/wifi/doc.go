// Package wifi manages the clock's wireless link.
//
// A Manager drives a Radio through the connectivity states: it associates
// with the configured network using a bounded number of polling attempts,
// falls back to hosting an access point for configuration, and watches the
// link once connected.
//
// Two radios are provided. NMCLIRadio drives NetworkManager through the
// nmcli command line tool. SimRadio is an in-memory radio for simulation
// and tests.
package wifi
