// Command tokenstress hammers a single fifotoken.Token from many goroutines
// and checks that it never grants two of them at once.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = &cobra.Command{
	Use:   "tokenstress",
	Short: "Stress test a FIFO re-entrant token",
	Long: `tokenstress runs a number of workers that repeatedly acquire, nest,
renew and release a single token, verifying mutual exclusion and reporting
how long workers waited. Every flag may also be set with a FIFOTOKEN_
prefixed environment variable, e.g. FIFOTOKEN_WORKERS=64.`,
	SilenceUsage: true,
	RunE:         runStress,
}

func init() {
	flags := rootCmd.Flags()
	flags.Int("workers", 16, "number of concurrent workers")
	flags.Int("rounds", 1000, "acquisitions per worker")
	flags.Duration("hold", 0, "maximum time to hold the token per round")
	flags.Int("nest", 2, "maximum extra nested acquisitions per round")
	flags.Int("renew-every", 10, "renew roughly once every n rounds (0 disables)")
	flags.Bool("verbose", false, "log every contention event")
	_ = viper.BindPFlags(flags)

	viper.SetEnvPrefix("FIFOTOKEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}

func runStress(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg := Config{
		Workers:    viper.GetInt("workers"),
		Rounds:     viper.GetInt("rounds"),
		Hold:       viper.GetDuration("hold"),
		Nest:       viper.GetInt("nest"),
		RenewEvery: viper.GetInt("renew-every"),
	}
	logger.Info("starting", zap.Object("config", cfg))

	res, err := Run(ctx, cfg, logger)
	logger.Info("finished", zap.Object("result", res))
	return err
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
