package main

import "tabledeck/internal/cli"

func main() {
	cli.Execute()
}
