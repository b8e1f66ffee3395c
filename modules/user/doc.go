// Package user persists subscription identity: one row per email, created
// lazily on the first checkout attempt, with subscription state written only
// by the webhook reconciliation path.
package user
