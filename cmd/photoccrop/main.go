package main

import "github.com/devbush/photoccrop/internal/adapters/cli"

func main() {
	cli.Execute()
}
