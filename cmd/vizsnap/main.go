package main

import "github.com/schedviz/vizsnap/cmd/vizsnap/commands"

func main() {
	commands.Execute()
}
