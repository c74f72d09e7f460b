// Command rflinks manages a local inventory of RF network links.
package main

import "github.com/mesh-intelligence/rflinks/internal/cli"

func main() {
	cli.Execute()
}
