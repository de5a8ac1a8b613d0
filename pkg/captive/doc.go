// Package captive answers DNS queries on the configuration network so that
// every name resolves to the device and clients open the portal.
//
// The Responder only runs while the access point is up. Every A question is
// answered with the access point address; other question types get an empty
// authoritative reply.
package captive
