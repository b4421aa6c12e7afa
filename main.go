package main

import "stringsync/internal/cli"

func main() {
	cli.Execute()
}
