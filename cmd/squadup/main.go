package main

import (
	"github.com/squadup/squadup/internal/cli"
)

func main() {
	cli.Execute()
}
