package main

import (
	"github.com/nbcoach/nbcoach/internal/ui/cli"
)

func main() {
	cli.Execute()
}
