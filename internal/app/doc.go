// Package app wires the console together: configuration, logging, the
// session store, the API client, and the TUI.
//
// The entrypoint dispatches into it per subcommand. Run boots the console
// (prompting for login when no session is stored); Login, Logout,
// CreateAdminUser and CreateClientUser are the non-TUI flows, built on
// charmbracelet/huh forms so their required-field validation happens before
// any request is made.
//
// Logging goes to the configured log file; the TUI owns the terminal.
package app
