package main

import (
	"os"

	"github.com/robalobadob/bingo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
