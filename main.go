// Package main is the entry point for the prefixlint CLI.
package main

import "prefixlint.dev/pkg/prefixlint/cmd"

func main() {
	cmd.Execute()
}
