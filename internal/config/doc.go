// Package config loads the manifest configuration file.
//
// The console reads ~/.config/manifest/config.toml when present and falls
// back to production defaults otherwise; a missing file is never an error.
// Fields:
//
//	api_base = "https://deepclear.ca/api"
//	timeout_seconds = 10
//	log_file = "~/.local/share/manifest/manifest.log"
//	session_file = "~/.config/manifest/session.json"
//
// All paths get tilde expansion and are resolved to absolute form. The
// package is read-only and stateless: configuration is loaded once at
// startup and returned as an immutable value.
package config
