package main

import "github.com/berth-dev/triplet/internal/cli"

func main() {
	cli.Execute()
}
