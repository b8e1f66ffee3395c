// Package config loads environment-based configuration into typed structs.
//
// Configuration structs declare their environment bindings with `env` tags
// and are loaded with Load or MustLoad. A .env file in the working directory
// is picked up automatically for local development. Each struct type is
// parsed once per process and cached, so every component reads a consistent
// view of the environment regardless of load order.
package config
