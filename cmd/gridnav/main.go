// Package main is the entry point for the gridnav CLI.
package main

import "github.com/pdrpinto/gridnav/internal/cli"

func main() {
	cli.Execute()
}
