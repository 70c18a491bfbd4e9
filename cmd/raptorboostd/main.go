// Command raptorboostd is the RaptorBoost transfer daemon.
package main

import (
	"os"

	"github.com/meigma/raptorboost/cmd/raptorboostd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
