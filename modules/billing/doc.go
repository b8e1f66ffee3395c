// Package billing opens subscription checkout sessions and reconciles
// payment provider webhook events into user subscription state.
//
// Subscription status is written only here: the checkout path creates rows
// without touching status, and the webhook path is the sole mutator.
package billing
