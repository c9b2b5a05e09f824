// bench posts the same payload as JSON and as TOON to a running server and
// prints both results with a time and size comparison.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chuanjin/toonbench/internal/bench"
	"github.com/chuanjin/toonbench/internal/config"
	"github.com/chuanjin/toonbench/internal/parser"
	"github.com/cockroachdb/errors"
	goFlags "github.com/jessevdk/go-flags"
)

// Flags represents command line flags
type Flags struct {
	URL        string        `short:"u" long:"url"        default:"http://localhost:3000" description:"Server base URL"`
	Timeout    time.Duration `short:"t" long:"timeout"    default:"10s"                   description:"Per request timeout"`
	Iterations int           `short:"n" long:"iterations" default:"1"                     description:"Runs per format; times are averaged"`
	Wait       time.Duration `short:"w" long:"wait"       default:"500ms"                 description:"Delay before the first request"`
	JSON       string        `long:"json"                                                 description:"JSON payload (defaults to the reference payload)"`
	TOON       string        `long:"toon"                                                 description:"TOON payload (defaults to the reference payload)"`
}

func main() {
	flags := Flags{JSON: parser.ExampleJSON, TOON: parser.ExampleTOON}
	_, err := goFlags.NewParser(&flags, goFlags.HelpFlag|goFlags.PassDoubleDash).Parse()
	if config.IsErrOfType(err, goFlags.ErrHelp) {
		fmt.Println(err)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "parse CLI arguments"))
		os.Exit(2)
	}

	time.Sleep(flags.Wait)

	client := bench.NewClient(flags.URL, flags.Timeout)
	report, err := bench.Run(context.Background(), client, flags.JSON, flags.TOON, flags.Iterations)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := bench.Render(os.Stdout, report); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
