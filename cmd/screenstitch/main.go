package main

import (
	"github.com/screenstitch/screenstitch/cmd/screenstitch/commands"
)

func main() {
	commands.Execute()
}
