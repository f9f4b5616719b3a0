package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newOverviewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the portfolio overview and per-account stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			data, err := client.TradeData(ctx, opts.userID)
			if err != nil {
				return err
			}
			return opts.print(cmd, data)
		},
	}
}

func newChartCmd(opts *rootOptions) *cobra.Command {
	var cumulative bool

	cmd := &cobra.Command{
		Use:   "chart ACCOUNT_ID",
		Short: "Show an account's chart points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			chart, err := client.AccountChart(ctx, opts.userID, args[0], cumulative)
			if err != nil {
				return err
			}
			return opts.print(cmd, chart)
		},
	}
	cmd.Flags().BoolVar(&cumulative, "cumulative", false, "include running totals")
	return cmd
}

func newPeriodsCmd(opts *rootOptions) *cobra.Command {
	var timeframe string

	cmd := &cobra.Command{
		Use:   "periods ACCOUNT_ID",
		Short: "Total an account's results per day, week or month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			periods, err := client.Periods(ctx, opts.userID, args[0], timeframe)
			if err != nil {
				return err
			}
			return opts.print(cmd, periods)
		},
	}
	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", "day", "day, week or month")
	return cmd
}

func newTradeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trade TRADE_ID",
		Short: "Show a trade's risk metrics and price ladder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			detail, err := client.TradeDetail(ctx, opts.userID, args[0])
			if err != nil {
				return err
			}
			return opts.print(cmd, detail)
		},
	}
}

func newSnapshotsCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List stored portfolio snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			snapshots, err := client.Snapshots(ctx, opts.userID, limit)
			if err != nil {
				return err
			}
			return opts.print(cmd, snapshots)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of snapshots (server default when 0)")
	return cmd
}
