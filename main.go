package main

import "github.com/dotcommander/papereval/cmd"

func main() {
	cmd.Execute()
}
