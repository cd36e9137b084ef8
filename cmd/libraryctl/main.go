package main

import "library-catalog/cmd/libraryctl/commands"

func main() {
	commands.Execute()
}
