// Command usernotes is the moderation CLI for the usernotes record.
package main

import (
	"fmt"
	"os"

	"github.com/modkit/usernotes/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
