// Package portal serves the clock's web pages.
//
// APHandler is the configuration portal served while the device hosts its
// own network: it lists nearby networks, stages credentials and saves the
// full configuration. Any path it does not know redirects to the root page
// so that captive-portal checks land on the form.
//
// StationHandler serves the status page, the live settings form, the
// configuration reset and a QR code of the status URL once the clock has
// joined a network.
//
// Pages are rendered from embedded html/template files. The handlers hold
// no state of their own; everything goes through the backend interfaces.
package portal
