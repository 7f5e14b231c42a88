package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nugen/evgb/internal/config"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/runtime"
)

// cli holds the state shared by all subcommands.
type cli struct {
	configPath string
	logLevel   string

	cfg     *config.Config
	run     *config.RunOptions
	species pdg.Table
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "evgb",
		Short: "Translate generator event records into truth records",
		Long: `evgb converts generator event records into MCTruth, GTruth and MCFlux
records, rebuilds event records from stored truth and checks that events
survive the round trip.

Input events are JSON lines, one generated event per line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultPath, "configuration file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newConvertCmd(c),
		newRetrieveCmd(c),
		newVerifyCmd(c),
		newKeygenCmd(),
	)
	return root
}

func (c *cli) init(stderr io.Writer) error {
	_ = godotenv.Load()

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.logLevel))); err != nil {
		return fmt.Errorf("invalid log level %q", c.logLevel)
	}
	c.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.run = config.NewRunOptions(c.logger)
	if err := runtime.SelectGenerator(c.run, cfg.Generator); err != nil {
		return err
	}
	species, err := runtime.LoadSpecies(cfg.Species.Path, c.logger)
	if err != nil {
		return err
	}
	c.species = species
	return nil
}

// openInput returns the named file, or stdin for "" and "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
