// Command portfolio-projector runs Monte Carlo projections, scenario
// analysis and retirement planning calculations over a YAML plan file.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
