// Package openai implements the chat completion collaborator: a thin client
// over the OpenAI chat completions endpoint that turns a single user message
// into the model's reply text.
//
// The client takes an injectable http.Client with a bounded timeout so an
// unavailable or slow upstream surfaces as an error instead of a hung
// request.
package openai
