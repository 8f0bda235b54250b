// Command tinyl-verify lints a compiled tinyL program and runs it through the
// functional simulator.
//
//	tinyl-verify [-report file] <tinyL.out|program.yaml> [input ...]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/sarchlab/tinyl/program"
	"github.com/sarchlab/tinyl/verify"
	"github.com/tebeka/atexit"
)

func main() {
	reportPath := flag.String("report", "", "also save the report to this file")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: tinyl-verify [-report file] <program> [input ...]")
		atexit.Exit(1)
	}

	programPath := flag.Arg(0)
	prog, err := program.LoadAny(programPath)
	if err != nil {
		log.Printf("Failed to load program from %s: %v", programPath, err)
		atexit.Exit(1)
	}

	inputs := make([]int32, 0, flag.NArg()-1)
	for _, arg := range flag.Args()[1:] {
		v, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			log.Printf("Invalid input value %q: %v", arg, err)
			atexit.Exit(1)
		}
		inputs = append(inputs, int32(v))
	}

	report := verify.GenerateReport(programPath, prog, inputs)
	report.WriteReport(os.Stdout)

	if *reportPath != "" {
		if err := report.SaveReportToFile(*reportPath); err != nil {
			log.Printf("%v", err)
			atexit.Exit(1)
		}
	}

	if !report.Passed() {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
