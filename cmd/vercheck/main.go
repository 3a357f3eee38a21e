package main

import (
	"github.com/anchore/vercheck/cmd/vercheck/cli"
)

func main() {
	cli.Execute()
}
