package commands

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a market event on the quote feed",
	}
	cmd.PersistentFlags().StringP("book", "b", "", "Only apply the event to this book")

	cmd.AddCommand(&cobra.Command{
		Use:   "quote <name> <value>",
		Short: "Set a simple quote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "invalid quote value"), "value", args[1])
			}
			return c.publish(cmd, domain.MarketEvent{Kind: domain.EventQuote, Name: args[0], Value: v})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "link <name> [target]",
		Short: "Relink a link to another quote, or reset it when target is omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := domain.MarketEvent{Kind: domain.EventLink, Name: args[0]}
			if len(args) == 2 {
				ev.Target = args[1]
			}
			return c.publish(cmd, ev)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "date <YYYY-MM-DD>",
		Short: "Move the evaluation date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.Parse(time.DateOnly, args[0])
			if err != nil {
				return zerr.With(zerr.Wrap(err, "invalid evaluation date"), "value", args[0])
			}
			return c.publish(cmd, domain.MarketEvent{Kind: domain.EventDate, Date: d})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "freeze <name>",
		Short: "Freeze a derived quote or instrument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.publish(cmd, domain.MarketEvent{Kind: domain.EventFreeze, Name: args[0]})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unfreeze <name>",
		Short: "Unfreeze a derived quote or instrument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.publish(cmd, domain.MarketEvent{Kind: domain.EventUnfreeze, Name: args[0]})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "recalculate <name>",
		Short: "Force a derived quote or instrument to recompute, even when frozen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.publish(cmd, domain.MarketEvent{Kind: domain.EventRecalculate, Name: args[0]})
		},
	})

	return cmd
}

func (c *CLI) publish(cmd *cobra.Command, ev domain.MarketEvent) error {
	ev.Book, _ = cmd.Flags().GetString("book")
	return c.app.Publish(cmd.Context(), ev)
}
