// Command bfcalc is an arbitrary precision binary floating-point calculator.
package main

import "github.com/db47h/bigfloat/internal/cli"

func main() {
	cli.Execute()
}
