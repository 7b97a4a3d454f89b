package cli

import (
	"fmt"
	"strings"

	"github.com/credledger/credledger-go/crypto/hashers"
)

// CheckHash returns an error listing the registered tree hashing
// strategies if id is not one of them.
func CheckHash(id string) error {
	if _, err := hashers.NewTreeHasher(id); err != nil {
		return fmt.Errorf("%w (registered: %s)", err, strings.Join(hashers.Registered(), ", "))
	}
	return nil
}
