// Package cli implements the lsr command-line interface.
//
// This package provides commands for computing effect frames, setting the
// effect up on scene documents, replaying scripted input and previewing a
// target interactively. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - frame: Compute the frame for one pointer position
//   - setup: Rebuild a scene document and print the resulting markup
//   - replay: Dispatch a scene's events and report styles after each
//   - tree: Render the layer hierarchy as DOT, SVG, PNG or PDF
//   - preview: Drive a target with the terminal mouse (bubbletea)
//
// # Configuration
//
// The effect configuration is merged from, in increasing precedence, the
// built-in defaults, the --config file (or $LSR_CONFIG), the scene's
// [effect] table and the command-line flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context and injected into effect instances, so
// setup diagnostics appear at debug level.
package cli
