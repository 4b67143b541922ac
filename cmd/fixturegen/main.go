package main

import (
	"fmt"
	"os"
)

const usageText = `fixturegen generates course, student, classroom and attendance fixtures.

Usage:
  fixturegen generate [flags]   generate fixture files
  fixturegen runs [flags]       list archived runs
  fixturegen show -run ID       show one archived run
  fixturegen strategies         list enrollment strategies

Run "fixturegen <command> -h" for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "generate":
		generateCmd(args)
	case "runs":
		listRunsCmd(args)
	case "show":
		showRunCmd(args)
	case "strategies":
		listStrategies()
	case "help", "-h", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}
}

// fatalf reports an error that happened before the logger exists.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
