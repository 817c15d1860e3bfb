// Command analyze turns a packing list workbook into an analysis workbook
// without running the HTTP server.
//
//	analyze "PACKING LIST 14.xlsx"
//	analyze --size-order 16,14,12 week14.xlsx out.xlsx
package main

import (
	"os"
)

func main() {
	if err := execute(newRootCmd(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
