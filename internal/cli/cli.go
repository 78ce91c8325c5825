// Package cli provides the storefront command-line interface.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wichananm65/skincare-storefront/internal/config"
	"github.com/wichananm65/skincare-storefront/internal/logging"
)

// Exit codes returned by Execute.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     config.Config
	logger  *zap.Logger

	configPath string
	logLevel   string
}

func New() *CLI {
	c := &CLI{}
	c.rootCmd = c.newRootCmd()
	return c
}

// Execute runs the CLI with os.Args.
func (c *CLI) Execute() int {
	defer func() {
		if c.logger != nil {
			_ = c.logger.Sync()
		}
	}()
	if err := c.rootCmd.Execute(); err != nil {
		c.rootCmd.PrintErrln("storefront:", err)
		return ExitFailure
	}
	return ExitSuccess
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Skincare storefront API",
		Long: `storefront serves the skincare catalog, blog, quiz, cart and checkout API.

Configuration is read from storefront.yaml, STOREFRONT_* environment
variables and a .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./storefront.yaml)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides config)")

	cmd.AddCommand(c.newServeCmd())
	cmd.AddCommand(c.newProductsCmd())
	return cmd
}

func (c *CLI) initConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	c.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}
