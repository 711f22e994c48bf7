package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price [instruments...]",
		Short: "Value the instruments of one or more books",
		Long: "Value the instruments of one or more books. Books are priced concurrently " +
			"and reported in the order given. Without instruments, every instrument is valued.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configs, _ := cmd.Flags().GetStringArray("config")
			return c.app.Price(cmd.Context(), configs, priceOptions(cmd, args))
		},
	}
	cmd.Flags().StringArrayP("config", "c", nil, "Book file or directory (repeatable, defaults to ./book.yaml)")
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [instruments...]",
		Short: "Reprice a book as market events arrive on the quote feed",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _ := cmd.Flags().GetString("config")
			opts := priceOptions(cmd, args)
			opts.Reload, _ = cmd.Flags().GetBool("reload")
			return c.app.Watch(cmd.Context(), config, opts)
		},
	}
	cmd.Flags().StringP("config", "c", ".", "Book file or directory")
	cmd.Flags().Bool("reload", false, "Rebuild the market when the book file changes")
	return cmd
}
