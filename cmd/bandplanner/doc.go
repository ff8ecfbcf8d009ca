// Package main hosts the bandplanner CLI entrypoint and command graph.
//
// The Cobra command tree maps terminal invocations onto the roster model:
// one-shot commands for members, songs, playability, export and import, plus
// an interactive session that keeps availability and the pending song
// selection alive between inputs. Configuration resolution, logger setup and
// store wiring live in commandContext so subcommands only deal with output.
//
// Keep this package thin: behaviour belongs in internal/roster,
// internal/playability and internal/snapshot, and is surfaced here.
package main
