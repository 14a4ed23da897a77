package main

import (
	"os"

	"github.com/suPer8Hu/chatrelay/cmd/chatrelay/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
