package main

import (
	"os"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	os.Exit(a.execute(os.Args[1:]))
}
