// Package openapi turns the request body of an OpenAPI operation into a field
// registry. Loader and Parser are implemented under internal/openapi.
package openapi
