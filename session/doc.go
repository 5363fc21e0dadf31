// Package session provides the transport layer for the Roblox web API client.
//
// A Session owns a reusable net/http client with a cookie jar and a mutable
// set of default headers, and exposes a single Send primitive that executes
// one raw HTTP exchange. It knows nothing about CSRF tokens or error
// translation; that orchestration lives in the client package.
//
// Notes
//   - Default headers are applied first and can be overridden per request.
//   - The default-header map is safe for concurrent mutation; the rotating
//     CSRF token is written through SetHeader while other requests are in
//     flight, and the most recent write wins.
//   - Close is idempotent and never panics.
package session
