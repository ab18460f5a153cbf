package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/voxlab/batch"
	"github.com/katalvlaran/voxlab/labeling"
	"github.com/katalvlaran/voxlab/logging"
	"github.com/katalvlaran/voxlab/raster"
	"github.com/katalvlaran/voxlab/rasterio"
)

const helpMessage = `
voxlab labels, segments and filters 2D images and 3D volumes.

Inputs and outputs are PNG or TIFF images, directories of image slices
(inputs only), or .vxl raw containers that keep any raster exactly.

Usage: voxlab <command> [options] <input> <output>

Commands:

	label       Label connected foreground components.
	regions     Label connected same-valued regions.
	boundary    Extract boundary segments between the regions of a label map.
	extrema     Mark regional maxima (or minima with -kind minima).
	attribute   Attribute opening, closing or top-hat (-kind, -measure, -threshold).
	batch       Run the jobs of a TOML file: voxlab batch -config jobs.toml

Common options:

	-conn       =int      Connectivity 4 or 8 (2D), 6 or 26 (3D); default 8 / 26.
	-format     =int      Label bits 8, 16 or 32 (default 16).
	-log-level  =string   debug, info, warn or error.
	-h, -help   (flag)    Show help message
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "voxlab: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches a command line. It is main without the process exit.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		fmt.Fprint(stdout, helpMessage)
		return nil
	}
	cmd, args := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, helpMessage) }
	var (
		spec     = jobSpec{Name: cmd, Op: cmd}
		logLevel = fs.String("log-level", "warn", "")
		config   = fs.String("config", "", "")
		workers  = fs.Int("workers", 0, "")
		bg       float64
	)
	fs.IntVar(&spec.Connectivity, "conn", 0, "")
	fs.IntVar(&spec.Format, "format", 0, "")

	switch cmd {
	case batch.OpRegions:
		fs.Float64Var(&bg, "background", 0, "")
	case batch.OpBoundary:
		fs.StringVar(&spec.Placement, "placement", "both", "")
	case batch.OpExtrema:
		fs.StringVar(&spec.Kind, "kind", "maxima", "")
	case batch.OpAttribute:
		fs.StringVar(&spec.Kind, "kind", "opening", "")
		fs.StringVar(&spec.Measure, "measure", "", "")
		fs.Float64Var(&spec.Threshold, "threshold", 0, "")
	case batch.OpLabel, "batch":
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	spec.Background = float32(bg)

	if cmd == "batch" {
		if *config == "" || fs.NArg() != 0 {
			return errors.New("batch needs -config <jobs.toml> and no arguments")
		}
		jf, err := loadJobs(*config)
		if err != nil {
			return err
		}
		if *workers > 0 {
			jf.Workers = *workers
		}
		return runJobs(ctx, jf, stdout, stderr)
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("%s needs <input> <output>", cmd)
	}
	spec.Input, spec.Output = fs.Arg(0), fs.Arg(1)

	return runJobs(ctx, &jobFile{
		Workers: 1,
		Logging: logging.Config{Level: *logLevel},
		Jobs:    []jobSpec{spec},
	}, stdout, stderr)
}

// runJobs loads every input, runs the jobs through a batch.Runner and
// writes the outputs. Nothing is written unless all jobs succeed.
func runJobs(ctx context.Context, jf *jobFile, stdout, stderr io.Writer) error {
	logger, err := logging.New(&jf.Logging, stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	tasks := make([]batch.Task, len(jf.Jobs))
	for i, j := range jf.Jobs {
		in, err := rasterio.Load(j.Input)
		if err != nil {
			return fmt.Errorf("job %q: %w", j.Name, err)
		}
		if tasks[i], err = j.task(in); err != nil {
			return fmt.Errorf("job %q: %w", j.Name, err)
		}
		logger.Debug("loaded input", "job", j.Name, "input", j.Input, "raster", in.String())
	}

	start := time.Now()
	results, err := batch.NewRunner(batch.WithWorkers(jf.Workers), batch.WithLogger(logger.Logger)).Run(ctx, tasks)
	if err != nil {
		return err
	}
	for i, res := range results {
		j := jf.Jobs[i]
		if err := rasterio.Save(j.Output, res.Output); err != nil {
			return fmt.Errorf("job %q: %w", j.Name, err)
		}
		fmt.Fprintln(stdout, summary(j, res))
	}
	fmt.Fprintf(stdout, "%d job(s) in %v\n", len(results), time.Since(start).Round(time.Millisecond))

	return nil
}

// summary describes one finished job for humans.
func summary(j jobSpec, res batch.Result) string {
	out := res.Output
	line := fmt.Sprintf("%s: %s %s samples", j.Name, res.Op, humanize.Comma(int64(out.Len())))
	switch res.Op {
	case batch.OpLabel, batch.OpRegions, batch.OpBoundary:
		line += fmt.Sprintf(", %s labels", humanize.Comma(int64(labeling.Count(out))))
	case batch.OpExtrema:
		line += fmt.Sprintf(", %s extremum samples", humanize.Comma(int64(countNonZero(out))))
	}
	line += fmt.Sprintf(" in %v -> %s", res.Duration.Round(time.Microsecond), j.Output)
	if fi, err := os.Stat(j.Output); err == nil {
		line += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(fi.Size())))
	}

	return line
}

func countNonZero(r *raster.Raster) int {
	n := 0
	for _, v := range r.Data() {
		if v != 0 {
			n++
		}
	}
	return n
}
