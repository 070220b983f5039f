// Package main provides the CLI entrypoint for wintag.
package main

func main() {
	Execute()
}
