// Package middleware groups the Fiber middleware of the tag manager server.
//
//   - rayid: assigns every request a uuid (kept from a valid X-Ray-ID header),
//     stores it in the locals read by logger.WithRayID and echoes it in the response.
//   - auth: rejects requests without the configured X-API-Key. An empty key
//     disables the check for local use.
//
// The server registers rayid first, then the request logger, then auth, so that
// rejected requests are still traced.
package middleware
