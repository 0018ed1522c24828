// Command autogrow is a terminal front end for the Auto-Grow API. It keeps
// the signed-in credentials in a local SQLite state file between runs.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
