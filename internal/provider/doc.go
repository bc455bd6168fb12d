// Package provider contains the remote translation services used when a
// text is not found in any dictionary.
//
// Google and Azure are called through their REST APIs, OpenAI and Gemini
// through their Go SDKs. Each call is a single attempt: errors are returned
// to the caller as they are and nothing is retried. A provider can be
// wrapped in a circuit breaker so that a failing service is not hammered
// while a batch is running.
package provider
