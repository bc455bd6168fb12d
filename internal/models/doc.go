// Package models lists the OpenAI chat models that can be configured as
// openaiModel for the openai translation provider.
package models
