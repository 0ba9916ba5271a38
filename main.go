package main

import (
	"github.com/megjohnson1999/assembly-clustering-validation/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
