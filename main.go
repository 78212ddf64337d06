package main

import "intlgen/internal/cli"

func main() {
	cli.Execute()
}
