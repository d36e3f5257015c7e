package main

import "github.com/lcgenomics/vprio/pkg/cli"

func main() {
	cli.Execute()
}
