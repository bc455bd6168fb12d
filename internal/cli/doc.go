// Package cli provides command-line interface setup for the autotranslate
// application. It defines the cobra commands and flags; configuration is
// read by the config package, with --auto and --provider bound as overrides.
package cli
