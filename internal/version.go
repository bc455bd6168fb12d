package internal

// Version of autotranslate, overridden at build time with
// -ldflags "-X codeberg.org/snonux/autotranslate/internal.Version=..."
var Version = "0.1.0"
