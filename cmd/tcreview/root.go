package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"tcreview/internal/config"
	"tcreview/internal/debug"
	appErrors "tcreview/internal/errors"
)

type rootFlags struct {
	server string
	debug  bool
	json   bool
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "tcreview",
		Short: "Review generated test cases from the terminal",
		Long: `tcreview is a terminal client for the test case review service.

Run it without a command to open the review screen on the most recent batch,
or use the subcommands to list batches, upload documents, export results and
manage the knowledge base.`,
		Version:           Version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) { debug.Close() },
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReview(cmd.Context(), args, reviewOptions{})
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.server, "server", "", "review service base URL (overrides server.url)")
	pf.BoolVar(&c.flags.debug, "debug", false, "write a debug log to ~/.tcreview/debug.log")
	pf.BoolVar(&c.flags.json, "json", false, "print list output as JSON")

	root.AddCommand(
		newReviewCmd(c),
		newBatchesCmd(c),
		newUploadCmd(c),
		newExportCmd(c),
		newKnowledgeCmd(c),
		newVersionCmd(c),
	)
	return root
}

// setup loads configuration, applies flag overrides and starts the debug
// log. It runs before every command.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	overrides := map[string]any{}
	if cmd.Flags().Changed("server") {
		overrides[config.KeyServerURL] = strings.TrimSpace(c.flags.server)
	}
	if cmd.Flags().Changed("json") {
		overrides[config.KeyOutputJSON] = c.flags.json
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	settings, err := config.Load()
	if err != nil {
		return err
	}
	c.settings = settings

	if err := debug.Init(c.flags.debug); err != nil {
		return fmt.Errorf("init debug log: %w", err)
	}
	debug.Info().Str("command", cmd.CommandPath()).Str("server", settings.ServerURL).Msg("command start")
	return nil
}

func parseBatchID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if err != nil || id <= 0 {
		return 0, appErrors.New(appErrors.CodeInvalidArgument, fmt.Sprintf("invalid batch id: %q", raw), nil)
	}
	return id, nil
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// requireConfirmation refuses destructive commands unless --yes was passed.
func requireConfirmation(yes bool, what string) error {
	if yes {
		return nil
	}
	return appErrors.New(appErrors.CodeInvalidArgument,
		fmt.Sprintf("refusing to delete %s without --yes", what), nil)
}
