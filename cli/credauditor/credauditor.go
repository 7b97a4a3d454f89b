// Executable ledger auditor. It keeps a trusted checkpoint per
// configured ledger, and checks checkpoint updates and node replies
// against it.
package main

import (
	"github.com/credledger/credledger-go/cli"
	"github.com/credledger/credledger-go/cli/credauditor/internal/cmd"
)

func main() {
	cli.ExecuteRoot(cmd.RootCmd)
}
