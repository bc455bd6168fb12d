// Package dictionary provides the JSON-file backed translation store. A
// store maps a language pair key ("en_hr") to source text and its
// translation, tracks how many new entries were added since the last flush,
// and rewrites its backing file only when something changed.
package dictionary
