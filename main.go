package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case listMode:
		printDemos(os.Stdout)
	case versionMode:
		fmt.Println("modex", version())
	case runMode:
		os.Exit(runMain(cli.Run))
	}
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}
