// Package webutil holds the small JSON request/response helpers shared by
// the HTTP handlers.
package webutil
