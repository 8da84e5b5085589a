// Package main provides the cvmat CLI for inspecting and producing .cvm files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

const version = "v0.1.0"

const usage = `cvmat %s - typed matrix files

Usage:
  cvmat [flags] <command> [args]

Commands:
  version                      Show version
  info   <file.cvm>            List matrices (name, type, shape, size)
  stats  <file.cvm>            Print L2 norm, min and max of every matrix
  demo   <out.cvm>             Write a small sample file
  export <in.cvm> <out.st>     Convert a .cvm file to SafeTensors

Flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run parses global flags and dispatches to a subcommand.
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("cvmat", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "enable debug logging")
	compress := fs.Bool("compress", false, "zstd-compress the data section when writing")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usage, version)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose)

	if fs.NArg() == 0 {
		fs.Usage()
		return nil
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "cvmat %s\n", version)
		return nil
	case "info":
		if len(rest) != 1 {
			return fmt.Errorf("usage: cvmat info <file.cvm>")
		}
		return cmdInfo(stdout, rest[0])
	case "stats":
		if len(rest) != 1 {
			return fmt.Errorf("usage: cvmat stats <file.cvm>")
		}
		return cmdStats(stdout, rest[0])
	case "demo":
		if len(rest) != 1 {
			return fmt.Errorf("usage: cvmat demo <out.cvm>")
		}
		return cmdDemo(stdout, rest[0], *compress)
	case "export":
		if len(rest) != 2 {
			return fmt.Errorf("usage: cvmat export <in.cvm> <out.safetensors>")
		}
		return cmdExport(stdout, rest[0], rest[1])
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func setupLogging(verbose bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
