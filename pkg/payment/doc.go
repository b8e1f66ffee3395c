// Package payment abstracts the payment provider behind a small capability
// interface: customer creation, hosted checkout sessions, and signed webhook
// parsing. The Stripe implementation backs it with the official SDK; the
// billing service only ever sees the Provider interface, which keeps webhook
// verification and SDK calls substitutable in tests.
package payment
