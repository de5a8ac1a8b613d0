// Package persistence provides the key/value store behind the clock's settings.
//
// Values live in namespaces. A namespace holds string and integer values and
// is committed as a whole, so a multi-key update either lands completely or
// not at all. FileStore keeps one YAML document per namespace under a data
// directory; MemoryStore is used for simulation and tests.
package persistence
