package main

import "gameledger/internal/cli"

func main() {
	cli.Execute()
}
