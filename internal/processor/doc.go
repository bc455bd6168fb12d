// Package processor runs single and batch translation requests through a
// translation.Translator, prints the results and persists newly learned
// translations at the end of each run.
package processor
