// joblyctl is the command-line client for the joblyd API server.
package main

import (
	"github.com/bitswalk/jobly/src/joblyctl/internal/cmd"
)

func main() {
	cmd.Execute()
}
