// Ideinfo inspects and converts the IDE info messages the IntelliJ aspect
// writes for Rust targets.
package main

import "github.com/albertocavalcante/ideinfo/cmd/ideinfo/internal/cli"

func main() {
	cli.Execute()
}
