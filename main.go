package main

import "bootterm/internal/cli"

func main() {
	cli.Execute()
}
