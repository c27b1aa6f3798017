package main

import "github.com/bitswalk/jobly/src/joblyd/core"

func main() {
	core.Execute()
}
