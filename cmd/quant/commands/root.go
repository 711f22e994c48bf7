// Package commands implements the CLI commands for the quant valuation tool.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/quant/internal/app"
	"go.trai.ch/quant/internal/build"
)

// CLI represents the command line interface for quant.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "quant",
		Short:         "Lazy valuation of instrument books against live market data",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("format", "o", string(app.FormatText), "Report format (text or json)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newPriceCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newPublishCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func priceOptions(cmd *cobra.Command, instruments []string) app.PriceOptions {
	format, _ := cmd.Flags().GetString("format")
	return app.PriceOptions{
		Instruments: instruments,
		Format:      app.Format(format),
	}
}
