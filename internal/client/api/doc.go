// Package api implements the HTTP client for the remote fake-news analysis
// service. It is a stateless request wrapper: it injects the bearer token it
// was last given and translates HTTP failures into the client error taxonomy,
// but performs no token lifecycle management of its own.
package api
