package main

import "github.com/andrescamacho/manoria-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
