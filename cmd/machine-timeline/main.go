// Command machine-timeline classifies CNC machine signals into operating
// states and renders, exports, serves or publishes the resulting timelines.
package main

import "github.com/oshokin/machine-timeline/cmd/machine-timeline/cmd"

func main() {
	cmd.Execute()
}
