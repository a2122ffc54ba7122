// Package config loads gdcvault settings from TOML.
//
// Settings are resolved from an explicit --config path, then
// ~/.config/gdcvault/config.toml, then ./gdcvault.toml. A missing file is not an error:
// Default() reproduces the behaviour of the original script (GDC 2023, six tracks of
// interest, ten concurrent overview fetches, files in the working directory).
package config
