package main

import "github.com/lafise/go-fp-transfer/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
