package main

import "github.com/moffa90/go-mpsse/cmd/mpssectl/cmd"

func main() {
	cmd.Execute()
}
