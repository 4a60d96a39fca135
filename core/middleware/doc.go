// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler.
//
// # Components
//
//   - Auth: API key validation protecting the sync trigger endpoint.
//   - RayID: Generates a unique request ID for every incoming request,
//     injecting it into the context and response headers for tracing.
package middleware
