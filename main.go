package main

import "github.com/bbenesh/Snippets/cmd"

func main() {
	cmd.Execute()
}
