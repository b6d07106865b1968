package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1 // interrupted, or the walk could not continue
	exitInit   = 2
	exitUsage  = 3
	exitPath   = 4
	exitOffset = 5
)

// exitError carries the exit code out of the command. Its message has
// already been shown to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

type options struct {
	dryRun  bool
	verbose bool
	envFile string

	exe    string
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offset-hours [flags] pathname hour_offset [recurse_folders]",
		Short: "Offset the date taken of images by a number of hours",
		Long: `offset-hours reads the date taken of every image matching pathname,
offsets it by hour_offset hours and writes the corrected image into a
Corrected folder next to the original. Originals are never modified.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	flags := cmd.Flags()
	// a negative hour offset must not be read as a flag
	flags.SetInterspersed(false)
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Parse and offset dates but write nothing")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")
	flags.StringVar(&opts.envFile, "env", ".env", "Environment file to load settings from")

	return cmd
}

func main() {
	os.Exit(execute(os.Args, os.Stdout, os.Stderr))
}

// execute runs the command line and returns the exit code
func execute(argv []string, stdout, stderr io.Writer) int {
	opts := &options{exe: argv[0], stdout: stdout, stderr: stderr}
	cmd := newRootCmd(opts)
	cmd.SetArgs(argv[1:])
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(stderr, "❌ %v\n", err)
	return exitUsage
}

func run(ctx context.Context, opts *options, args []string) error {
	r := NewReporter(opts.stdout)

	if len(args) != 2 && len(args) != 3 {
		r.Usage(filepath.Base(opts.exe), defaultCodecs.Extensions())
		return &exitError{code: exitUsage}
	}

	r.Framed("Executable pathname: %s", opts.exe)

	cfg, err := loadConfig(opts.envFile)
	if err != nil {
		r.Framed("Invalid configuration: %v", err)
		return &exitError{code: exitInit, err: err}
	}
	if opts.verbose {
		cfg.LogLevel = zapcore.DebugLevel
	}
	logger := newLogger(opts.stderr, cfg.LogLevel)
	defer logger.Sync()

	recurse := len(args) == 3 && strings.EqualFold(args[2], "true")
	req, err := ResolveRequest(args[0], recurse, cfg.CorrectedFolder)
	if err != nil {
		r.Framed("Invalid pathname: %s", args[0])
		return &exitError{code: exitPath, err: err}
	}
	r.Framed("Given pathname: %s", args[0])

	offset, err := parseOffset(args[1])
	if err != nil {
		r.Framed("Invalid hour offset: %s", args[1])
		return &exitError{code: exitOffset, err: err}
	}

	tool, err := findExifTool(cfg.ExifTool)
	if err != nil {
		if !opts.dryRun {
			logger.Error("exiftool is required to write corrected images", zap.Error(err))
			return &exitError{code: exitInit, err: err}
		}
		logger.Warn("exiftool not found, reading EXIF in process only", zap.Error(err))
	}

	var journal *Journal
	if cfg.Journal != "" {
		reportPreviousRun(logger, cfg.Journal)
		journal = NewJournal(cfg.Journal, req, offset, opts.dryRun)
	}

	stats := NewRunStats()
	proc := &Processor{
		Store:    newExifStore(tool, logger),
		Codecs:   defaultCodecs,
		Offset:   offset,
		Reserved: cfg.CorrectedFolder,
		DryRun:   opts.dryRun,
		Reporter: r,
		Stats:    stats,
		Journal:  journal,
		Log:      logger,
		Now:      time.Now,
	}

	handler := NewSignalHandler(logger, func() {
		logger.Warn("interrupted", zap.String("progress", stats.FormatProgress()))
		if err := journal.Finish("interrupted"); err != nil {
			logger.Error("saving journal", zap.Error(err))
		}
		r.Summary(stats.Snapshot(), nil)
	})
	handler.Start()
	defer handler.Stop()

	logger.Info("starting",
		zap.String("pattern", req.Pattern()),
		zap.Bool("recurse", req.Recurse),
		zap.Stringer("offset", offset),
		zap.Bool("dry_run", opts.dryRun),
		zap.String("run_id", journal.RunID()))

	walker := NewWalker(defaultCodecs, logger)
	walkErr := walker.Walk(req, func(path string) error {
		return proc.ProcessFile(ctx, path)
	})

	phase := "complete"
	if walkErr != nil {
		phase = "failed"
		logger.Error("run stopped", zap.Error(walkErr))
	}
	if err := journal.Finish(phase); err != nil {
		logger.Error("saving journal", zap.Error(err))
	}

	r.Summary(stats.Snapshot(), proc.Failures())

	if walkErr != nil {
		return &exitError{code: exitFailed, err: walkErr}
	}
	return nil
}

// reportPreviousRun logs how the run that last wrote the journal ended
// before the journal is replaced
func reportPreviousRun(logger *zap.Logger, path string) {
	prev, err := LoadJournal(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("previous journal unreadable, replacing it", zap.String("journal", path), zap.Error(err))
		}
		return
	}
	logger.Info("replacing journal of previous run",
		zap.String("journal", path),
		zap.String("previous_run_id", prev.RunID),
		zap.String("previous_phase", prev.Phase),
		zap.String("previous_pattern", prev.Pattern),
		zap.Int("previous_files", len(prev.Entries)))
	if prev.Phase != "complete" {
		logger.Warn("previous run did not complete; files it already corrected are listed in its journal",
			zap.String("previous_phase", prev.Phase))
	}
}
