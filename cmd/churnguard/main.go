package main

import "github.com/churnguard/churnguard/internal/cli"

func main() {
	cli.Execute()
}
