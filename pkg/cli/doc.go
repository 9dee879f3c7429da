// Package cli provides the command-line interface for actions-server.
//
// Commands:
//   - serve: start the server from a configuration file and/or flags
//   - validate: load a configuration file and print the actions it defines
//   - version: show build information
package cli
