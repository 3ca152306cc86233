// Command dpc works with DPC archive files: extracting one into a
// directory tree, or creating one from a previously extracted tree.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/widberg/godpc/internal/dpc"
)

// interruptibleContext returns a context canceled on SIGINT/SIGTERM, so a
// -c run stops launching new object work instead of running to completion
// after the user has already asked it to stop.
func interruptibleContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		signal.Stop(sig)
		cancel()
	}()
	return ctx, cancel
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("dpc: ")

	var (
		input           = flag.String("i", "", "the input DPC file (extract) or directory (create) (required)")
		output          = flag.String("o", "", "the output directory (extract) or file (create); default derived from input")
		game            = flag.String("g", "", "the game the dpc should be compatible with (required, only \"fuel\")")
		quiet           = flag.Bool("q", false, "suppress progress output")
		force           = flag.Bool("f", false, "overwrite an existing output target without prompting")
		extract         = flag.Bool("e", false, "DPC -> directory")
		create          = flag.Bool("c", false, "directory -> DPC")
		unsafeFlag      = flag.Bool("u", false, "allow unknown version strings and tolerate typed-format failures")
		lz              = flag.Bool("l", false, "decompress on extract / recompress on create when requested")
		optimization    = flag.Bool("O", false, "use the optimized LZ encoder and dedupe pool references")
		recursive       = flag.Bool("r", false, "decode/encode typed objects via the format registry")
		noPool          = flag.Bool("no-pool", false, "ignore the pool section entirely")
		unoptimizedPool = flag.Bool("unoptimized-pool", false, "skip pool reference-record deduplication")
	)
	flag.Parse()

	if *input == "" || *game == "" {
		fmt.Fprintln(os.Stderr, "dpc: -i and -g are required")
		flag.Usage()
		os.Exit(2)
	}
	if *game != "fuel" {
		log.Fatalf("unsupported game %q (only \"fuel\" is implemented)", *game)
	}
	if *extract == *create {
		log.Fatal("exactly one of -e/-c must be given")
	}

	dest := *output
	if dest == "" {
		stem := strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input))
		dest = stem
	}

	opts := dpc.Options{
		Input: *input, Output: dest, Game: *game,
		Quiet: *quiet, Force: *force, Unsafe: *unsafeFlag,
		Extract: *extract, Create: *create,
		LZ: *lz, Optimization: *optimization, Recursive: *recursive,
		NoPool: *noPool, UnoptimizedPool: *unoptimizedPool,
	}

	progress := !*quiet && isatty.IsTerminal(os.Stdout.Fd())

	if opts.Extract {
		if err := runExtract(opts, progress); err != nil {
			log.Fatalf("extraction error: %v", err)
		}
		return
	}
	ctx, cancel := interruptibleContext()
	defer cancel()
	if err := runCreate(ctx, opts, progress); err != nil {
		log.Fatalf("creation error: %v", err)
	}
}

func runExtract(opts dpc.Options, progress bool) error {
	if !opts.Force {
		if _, err := os.Stat(opts.Output); err == nil {
			return fmt.Errorf("output directory %q already exists (use -f to overwrite)", opts.Output)
		}
	}
	input, err := os.ReadFile(opts.Input)
	if err != nil {
		return err
	}
	if progress {
		log.Printf("extracting %s -> %s", opts.Input, opts.Output)
	}
	return dpc.Extract(opts, input, opts.Output)
}

func runCreate(ctx context.Context, opts dpc.Options, progress bool) error {
	if !opts.Force {
		if _, err := os.Stat(opts.Output); err == nil {
			return fmt.Errorf("output file %q already exists (use -f to overwrite)", opts.Output)
		}
	}
	if progress {
		log.Printf("creating %s -> %s", opts.Input, opts.Output)
	}
	out, err := dpc.Create(ctx, opts, opts.Input)
	if err != nil {
		return err
	}
	return os.WriteFile(opts.Output, out, 0o666)
}
