// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation. Paths listed as public (the WhatsApp webhook,
//     swagger) bypass the check because Meta cannot send our key.
//   - rayid: assigns a request id, stores it in locals for logger.WithRayID
//     and echoes it in the X-Ray-ID response header.
//
// rayid must be registered first so every later log line carries the id.
package middleware
