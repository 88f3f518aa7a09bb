// Package output provides structured output handling for the grove CLI.
//
// Every command renders for two audiences: people at a terminal and agents
// or scripts reading JSON.
//
// # Printer
//
// The Printer switches format based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.WriteJSON(view)      // --json
//	printer.WriteYAML(view)      // --format yaml
//	printer.Table(headers, rows) // human listings
//	printer.Error(err)
//
// # Styling
//
// Human output uses lipgloss styles that are cleared when output is piped
// or --color never is given.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: Bad arguments, unknown revision, path or ref
//	output.ExitSystemError // 2: git failed or printed something unexpected
//
// FromError maps the object model's error families onto these codes:
// git.ErrNotFound is a user error, git.ErrCommandFailed and git.ErrParse
// are system errors.
package output
