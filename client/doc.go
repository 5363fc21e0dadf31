// Package client implements the token-aware request dispatcher for the
// Roblox web API.
//
// Every request flows through a fixed pipeline:
//
//  1. The method is canonicalized for internal comparisons; the wire value is
//     unaffected.
//  2. The request is sent through the transport session.
//  3. With SkipErrorTranslation set, the raw response is returned as-is.
//  4. On unsafe methods (POST, PUT, PATCH, DELETE) a response carrying the
//     CSRF token header rotates the session's stored token, and a 403 status
//     triggers exactly one resend of the identical request. GET is exempt
//     from all token logic.
//  5. Streaming responses are returned before any status inspection.
//  6. Status >= 400 is translated into an apierr.Error, decoding the JSON
//     "errors" field when the content type allows; decode failures degrade to
//     an error without entries.
//
// Transport failures propagate untranslated and are never retried here.
package client
