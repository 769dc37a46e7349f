// Package config defines the application's configuration structures and the
// viper-based loader that populates them from environment variables and an
// optional config file. Loaded configuration is validated before use so
// misconfiguration fails fast at startup.
package config
