// Command ddosolve is the CLI front-end driving the reference tsptw model
// through the parallel branch-and-bound solver.
package main

import "github.com/katalvlaran/ddopt/cmd/ddosolve/cmd"

func main() {
	cmd.Execute()
}
