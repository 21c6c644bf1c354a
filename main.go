package main

import "hoponhub/internal/cli"

func main() {
	cli.Execute()
}
