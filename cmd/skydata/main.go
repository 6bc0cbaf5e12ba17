// SPDX-License-Identifier: MIT

// Command skydata is the command-line front end of the skydata library.
package main

import "github.com/katalvlaran/skydata/internal/cli"

func main() {
	cli.Execute()
}
