package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nugen/evgb/internal/auth"
	"github.com/nugen/evgb/internal/codec/ghep"
	"github.com/nugen/evgb/internal/pipeline"
	"github.com/nugen/evgb/internal/roundtrip"
	"github.com/nugen/evgb/internal/runtime"
	"github.com/nugen/evgb/internal/storage"
)

func newConvertCmd(c *cli) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "convert [events.jsonl]",
		Short: "Translate generated events into truth records",
		Long: `Reads generated events from the file or stdin and writes one translated
event per line to stdout. With --save the events go to the configured
store and archive instead, and only their summaries are printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, inputArg(args))
			if err != nil {
				return err
			}
			defer in.Close()

			events, err := pipeline.DecodeEvents(in)
			if err != nil {
				return err
			}

			opts := runtime.PipelineOptions(c.cfg, c.run)
			enc := json.NewEncoder(cmd.OutOrStdout())

			if !save {
				p := pipeline.NewProcessor(c.species, nil, nil, opts, c.logger)
				for _, ev := range events {
					truth, err := p.Translate(cmd.Context(), ev)
					if err != nil {
						return err
					}
					if err := enc.Encode(truth); err != nil {
						return err
					}
				}
				return nil
			}

			store, err := runtime.OpenStore(c.cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()
			sink, err := runtime.OpenSink(store, c.cfg.Archive)
			if err != nil {
				return err
			}

			p := pipeline.NewProcessor(c.species, sink, nil, opts, c.logger)
			saved, err := p.ProcessBatch(cmd.Context(), events)
			if err != nil {
				return err
			}
			for _, truth := range saved {
				if err := enc.Encode(truth.Summary()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "save to the configured store instead of printing")
	return cmd
}

func newRetrieveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "retrieve <id>",
		Short: "Rebuild the generator event record of a stored event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			truth, err := c.stored(cmd, args[0])
			if err != nil {
				return err
			}
			rec := ghep.New(c.species, c.logger).Retrieve(truth.MCTruth, truth.GTruth)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
}

// ErrDiverged is returned by verify when an event does not survive the round
// trip.
var ErrDiverged = errors.New("round trip diverged")

func newVerifyCmd(c *cli) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "verify [events.jsonl]",
		Short: "Check that events survive translation and reconstruction",
		Long: `Translates each generated event, rebuilds it from the result and compares
the second translation against the first. With --id the stored event is
checked instead. One report is printed per event.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := roundtrip.NewChecker(c.species, runtime.PipelineOptions(c.cfg, c.run).Translation, c.logger)
			enc := json.NewEncoder(cmd.OutOrStdout())

			var reports []*roundtrip.Report
			if id != "" {
				truth, err := c.stored(cmd, id)
				if err != nil {
					return err
				}
				reports = append(reports, checker.CheckStored(truth.MCTruth, truth.GTruth))
			} else {
				in, err := openInput(cmd, inputArg(args))
				if err != nil {
					return err
				}
				defer in.Close()
				events, err := pipeline.DecodeEvents(in)
				if err != nil {
					return err
				}
				for _, ev := range events {
					reports = append(reports, checker.Check(ev.Record))
				}
			}

			diverged := 0
			for _, r := range reports {
				if !r.Clean() {
					diverged++
				}
				if err := enc.Encode(r); err != nil {
					return err
				}
			}
			if diverged > 0 {
				return fmt.Errorf("%w for %d of %d events", ErrDiverged, diverged, len(reports))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "check a stored event")
	return cmd
}

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen <name> <api-key>",
		Short: "Hash an API key for server.api_keys",
		Args:  cobra.ExactArgs(2),
		// no config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Add this to your evgb.yaml:")
			fmt.Fprintln(out, "server:")
			fmt.Fprintln(out, "  api_keys:")
			fmt.Fprintf(out, "    %s: %q\n", args[0], auth.HashAPIKey(args[1]))
			return nil
		},
	}
}

func (c *cli) stored(cmd *cobra.Command, id string) (*storage.EventTruth, error) {
	store, err := runtime.OpenStore(c.cfg.Storage)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.GetEvent(cmd.Context(), id)
}
