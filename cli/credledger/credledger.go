// Executable ledger node. It keeps one ledger in a leveldb database,
// and writes the checkpoints, checkpoint updates and transaction
// replies credauditor verifies.
package main

import (
	"github.com/credledger/credledger-go/cli"
	"github.com/credledger/credledger-go/cli/credledger/internal/cmd"
)

func main() {
	cli.ExecuteRoot(cmd.RootCmd)
}
