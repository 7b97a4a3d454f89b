// Package cli provides the cobra building blocks shared by the ledger
// client executables: a root command, and init, version and
// message-file subcommands.
package cli

import (
	"github.com/spf13/cobra"
)

// cobraCommand is used to implement any type of cobra command
// for any of the ledger client executables.
type cobraCommand interface {
	Build() *cobra.Command
}
