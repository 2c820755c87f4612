// Package api provides the HTTP handlers of the task API, the mapping from
// service errors to HTTP responses, and the OpenAPI document describing the
// routes. Request-scoped helpers live in the shared subpackage and the
// middleware in the middleware subpackage.
package api
