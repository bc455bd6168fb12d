// Package config resolves where the configuration and dictionary files
// live, creates them with default content when they are missing, and reads
// the provider selection from the JSON configuration file using viper.
package config
