// Package httpserver runs the service's HTTP listener with graceful
// shutdown on context cancellation or SIGINT/SIGTERM, configured either
// through functional options or an environment-backed Config.
package httpserver
