package main

import "github.com/tikz/vsdalign/cmd"

func main() {
	cmd.Execute() // initialize cobra commands
}
