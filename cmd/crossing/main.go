package main

import "github.com/anggasct/crossing/internal/cli"

func main() {
	cli.Execute()
}
