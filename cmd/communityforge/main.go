// Command communityforge runs the community feedback agent team for
// Thirsty's Game Studio.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
