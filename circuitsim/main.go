// Command circuitsim simulates a DC circuit with time-varying resistors and
// the instruments that measure it.
package main

import "github.com/ohmlab/circuitsim/circuitsim/cmd"

func main() {
	cmd.Execute()
}
