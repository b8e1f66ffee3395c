// Package pg manages the PostgreSQL connection pool and classifies the
// database errors the rest of the service branches on.
//
// Connect builds a pgxpool.Pool from environment configuration with startup
// retries. IsNotFoundError and IsDuplicateKeyError translate driver errors
// into the two conditions callers care about: a missing row and a unique
// constraint violation.
package pg
