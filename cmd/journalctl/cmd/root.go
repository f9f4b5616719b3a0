package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Nateight8/trading-mongoparl/internal/infra/httpclient"
)

type rootOptions struct {
	server  string
	userID  string
	output  string
	timeout time.Duration
}

// NewRootCmd builds the journalctl command tree. Results are written to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "journalctl",
		Short: "Query trade journal analytics from a running server",
		Long: `journalctl reads portfolio overviews, account charts, period totals,
trade ladders and snapshots from the journal API.

Examples:
  journalctl overview --user u1
  journalctl chart a1 --user u1 --cumulative
  journalctl periods a1 --user u1 --timeframe week -o yaml`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", "http://localhost:3000", "journal server base URL")
	flags.StringVarP(&opts.userID, "user", "u", "", "user id (required)")
	flags.StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")
	_ = root.MarkPersistentFlagRequired("user")

	root.AddCommand(
		newOverviewCmd(opts),
		newChartCmd(opts),
		newPeriodsCmd(opts),
		newTradeCmd(opts),
		newSnapshotsCmd(opts),
	)

	return root
}

func (o *rootOptions) client() (*httpclient.JournalClient, error) {
	return httpclient.NewJournalClient(o.server)
}

func (o *rootOptions) print(cmd *cobra.Command, v any) error {
	w := cmd.OutOrStdout()
	switch strings.ToLower(o.output) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
}
