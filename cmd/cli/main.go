package main

import "watchlog/cmd/cli/command"

func main() {
	command.Execute()
}
