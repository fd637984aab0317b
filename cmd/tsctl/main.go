// Command tsctl is the operator CLI for the timesheet service: it applies
// migrations, explains who may approve a timesheet and prints approval queues.
//
//	tsctl migrate up|status
//	tsctl resolve --employee=<uuid> [--at=<RFC3339>]
//	tsctl queue --actor=<uuid> [--at=<RFC3339>]
//	tsctl token --user=<uuid> [--role=manager]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
