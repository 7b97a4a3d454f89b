package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// A messageCommand is used to create a subcommand that processes a
// protocol message read from a file.
type messageCommand struct {
	use     string
	short   string
	long    string
	runFunc func(cmd *cobra.Command, msg []byte) error
}

var _ cobraCommand = (*messageCommand)(nil)

// NewMessageCommand constructs a command taking exactly one argument,
// the path of a message file, or "-" for stdin. runFunc receives the
// file contents.
func NewMessageCommand(use, short, long string,
	runFunc func(cmd *cobra.Command, msg []byte) error) *cobra.Command {
	msgCmd := &messageCommand{
		use:     use,
		short:   short,
		long:    long,
		runFunc: runFunc,
	}
	return msgCmd.Build()
}

// Build constructs the cobra.Command according to the
// messageCommand's settings.
func (msgCmd *messageCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:   msgCmd.use + " <file>",
		Short: msgCmd.short,
		Long:  msgCmd.long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(args[0])
			if err != nil {
				return err
			}
			return msgCmd.runFunc(cmd, msg)
		},
	}
	return &cmd
}

func readMessage(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	msg, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read message: %v", err)
	}
	return msg, nil
}
