package main

import (
	"os"

	"github.com/treep-lang/treep/cmd/treep/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
