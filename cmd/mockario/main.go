// mockario CLI - command-line interface for the mockario mock API server
package main

import "github.com/mockario/mockario/pkg/cli"

func main() {
	cli.Execute()
}
