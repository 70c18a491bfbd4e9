// Command raptorboost uploads files to a raptorboostd daemon.
package main

import (
	"os"

	"github.com/meigma/raptorboost/cmd/raptorboost/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
