package main

import (
	"os"

	"martianoff/sjavac/cmd/sjavac/commands"
)

func main() {
	os.Exit(commands.Execute())
}
