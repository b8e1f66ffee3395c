// Package chat authorizes chat completion requests against subscription
// state and forwards permitted messages to the completion collaborator.
package chat
