package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raywall/apigw-report/internal/client"
	"github.com/raywall/apigw-report/internal/config"
	"github.com/raywall/apigw-report/internal/repository"
	"github.com/raywall/apigw-report/internal/reporterr"
	"github.com/raywall/apigw-report/internal/service"
)

type flagValues struct {
	configPath      string
	profile         string
	accessKey       string
	secretKey       string
	region          string
	methods         []string
	output          string
	outputDir       string
	embedMethods    bool
	allowEmpty      bool
	skipRegionCheck bool
	verbose         bool
}

// Exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitUsage        = 2 // bad flag, argument or configuration value
	exitCollaborator = 3 // AWS answered with an error
)

// loggedError marks an error RunE already reported through the logger.
type loggedError struct{ err error }

func (e *loggedError) Error() string { return e.err.Error() }
func (e *loggedError) Unwrap() error { return e.err }

// usageError is a command line cobra rejected before RunE.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// backend groups the collaborators a run talks to.
type backend struct {
	Source  service.RestAPISource
	Regions service.RegionLister
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	fv := &flagValues{}

	cmd := &cobra.Command{
		Use:   "apigw-report",
		Short: "Export API Gateway REST APIs and their resources",
		Long: `Lists every REST API of an AWS region with its resource tree and writes
the result as a pipe-delimited CSV table or as a nested JSON document.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &usageError{err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(stderr, fv.verbose)

			cfg, err := resolveConfig(cmd, fv)
			if err != nil {
				logger.Error("invalid configuration", "error", err)
				return &loggedError{err}
			}

			b, err := awsBackend(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("could not create AWS client", "error", err)
				return &loggedError{err}
			}

			if err := run(cmd.Context(), cfg, b, runOptions{
				SkipRegionCheck: fv.skipRegionCheck,
				Now:             time.Now(),
			}, stdout, logger); err != nil {
				logger.Error("report failed", "error", err)
				return &loggedError{err}
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	bindFlags(cmd, fv)
	return cmd
}

// execute runs the root command and returns the process exit code. Errors
// raised before RunE are printed to stderr with a usage hint.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var logged *loggedError
	if !errors.As(err, &logged) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usage), reporterr.IsConfiguration(err):
		return exitUsage
	case reporterr.IsCollaborator(err):
		return exitCollaborator
	default:
		return exitFailure
	}
}

func bindFlags(cmd *cobra.Command, fv *flagValues) {
	f := cmd.Flags()
	f.StringVarP(&fv.configPath, "config", "c", "", "YAML config file")
	f.StringVarP(&fv.profile, "profile", "p", "", "AWS shared-config profile")
	f.StringVar(&fv.accessKey, "access-key", "", "AWS access key (requires --secret-key)")
	f.StringVar(&fv.secretKey, "secret-key", "", "AWS secret key (requires --access-key)")
	f.StringVarP(&fv.region, "region", "r", config.DefaultRegion, "AWS region")
	f.StringSliceVarP(&fv.methods, "methods", "m", nil, "HTTP methods to keep (comma-separated, default all)")
	f.StringVarP(&fv.output, "output", "o", "csv", "Output format (csv/json/json-pretty)")
	f.StringVarP(&fv.outputDir, "output-dir", "d", config.DefaultOutputDir, "Directory for the report file")
	f.BoolVar(&fv.embedMethods, "embed-methods", false, "Fetch full method configuration")
	f.BoolVar(&fv.allowEmpty, "allow-empty", false, "Write a report even when no REST API exists")
	f.BoolVar(&fv.skipRegionCheck, "skip-region-check", false, "Do not validate the region against EC2")
	f.BoolVarP(&fv.verbose, "verbose", "v", false, "Debug logging")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveConfig loads the config file and overrides it with the flags set on
// the command line.
func resolveConfig(cmd *cobra.Command, fv *flagValues) (*config.Config, error) {
	cfg, err := config.Load(fv.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("profile") {
		cfg.Profile = fv.profile
	}
	if f.Changed("access-key") {
		cfg.AccessKey = fv.accessKey
	}
	if f.Changed("secret-key") {
		cfg.SecretKey = fv.secretKey
	}
	if f.Changed("region") {
		cfg.Region = fv.region
	}
	if f.Changed("methods") {
		cfg.Methods = fv.methods
	}
	if f.Changed("output") {
		cfg.Output = fv.output
	}
	if f.Changed("output-dir") {
		cfg.OutputDir = fv.outputDir
	}
	if f.Changed("embed-methods") {
		cfg.EmbedMethods = fv.embedMethods
	}
	if f.Changed("allow-empty") {
		cfg.AllowEmpty = fv.allowEmpty
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func awsBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (backend, error) {
	awsClient, err := client.New(ctx, client.Options{
		Region:    cfg.Region,
		Profile:   cfg.Profile,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
	})
	if err != nil {
		return backend{}, err
	}

	if accountID, err := awsClient.LoadAccountID(ctx); err != nil {
		logger.Warn("could not resolve caller identity", "error", err)
	} else {
		logger.Debug("caller identity", "account_id", accountID)
	}

	apigwRepo := repository.NewAPIGWRepository(awsClient)
	apigwRepo.EmbedMethods = cfg.EmbedMethods

	return backend{
		Source:  apigwRepo,
		Regions: repository.NewEC2Repository(awsClient),
	}, nil
}

type runOptions struct {
	SkipRegionCheck bool
	Now             time.Time
}

// run validates the region, prints the run parameters and writes the report.
// An empty result is logged and reported as success.
func run(ctx context.Context, cfg *config.Config, b backend, opts runOptions, out io.Writer, logger *slog.Logger) error {
	if !opts.SkipRegionCheck && b.Regions != nil {
		regions := &service.RegionService{Regions: b.Regions, Logger: logger}
		if err := regions.Validate(ctx, cfg.Region); err != nil {
			return err
		}
	}

	filter := cfg.MethodFilter()
	printSummary(out, cfg)

	svc := service.NewReportService(b.Source, logger)
	res, err := svc.Export(ctx, service.Request{
		Region:     cfg.Region,
		Filter:     filter,
		Format:     cfg.Format(),
		OutputDir:  cfg.OutputDir,
		Label:      cfg.IdentityLabel(),
		AllowEmpty: cfg.AllowEmpty,
		Now:        opts.Now,
	})
	if errors.Is(err, reporterr.ErrNoRestAPIs) {
		logger.Info(fmt.Sprintf("No REST APIs found for %s region", cfg.Region))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Output file saved: %s\n", res.Path)
	return nil
}

func printSummary(w io.Writer, cfg *config.Config) {
	profile := cfg.Profile
	switch {
	case profile != "":
	case cfg.AccessKey != "":
		profile = "(static credentials)"
	default:
		profile = "(default chain)"
	}
	methods := "ALL"
	if m := cfg.MethodFilter().Methods(); len(m) > 0 {
		methods = strings.Join(m, ", ")
	}

	fmt.Fprintln(w, "Parameters:")
	fmt.Fprintf(w, "  Profile: %s\n", profile)
	fmt.Fprintf(w, "  Methods: %s\n", methods)
	fmt.Fprintf(w, "  Region:  %s\n", cfg.Region)
	fmt.Fprintf(w, "  Output:  %s\n", cfg.Format())
}
