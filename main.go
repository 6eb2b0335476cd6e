package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"telesweep/teleporter"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log := logrus.New()
	log.SetLevel(lvl)
	return log, nil
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "telesweep",
		Short: "sweep the teleporter confirmation parameter",
		Long: "telesweep evaluates the Synacor teleporter confirmation function\n" +
			"f(start0, start1) under every candidate r7 and reports the values\n" +
			"for which the result equals the target.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			matches, stats, err := teleporter.NewSweeper(cfg.sweepConfig(), log).Sweep(ctx)
			for _, m := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), m.R7)
			}
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"trials":  stats.Trials,
				"matches": len(matches),
			}).Info("done")
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "yaml config file")
	flags.Int("domain-max", int(teleporter.MaxWord), "inclusive upper bound of the r7 sweep")
	flags.Int("start0", 4, "initial r0")
	flags.Int("start1", 1, "initial r1")
	flags.Int("target", 6, "value the evaluation must hit")
	flags.Int("workers", 1, "trials evaluated in parallel")
	flags.String("log-level", "info", "logging level")

	v.BindPFlag("domain_max", flags.Lookup("domain-max"))
	v.BindPFlag("start0", flags.Lookup("start0"))
	v.BindPFlag("start1", flags.Lookup("start1"))
	v.BindPFlag("target", flags.Lookup("target"))
	v.BindPFlag("workers", flags.Lookup("workers"))
	v.BindPFlag("log_level", flags.Lookup("log-level"))

	cmd.AddCommand(newCheckCmd(), newConfigCmd(v, &configPath))
	return cmd
}

// check evaluates a single candidate, the thing you do once the sweep
// has produced an answer.
func newCheckCmd() *cobra.Command {
	var start0, start1, target int

	cmd := &cobra.Command{
		Use:   "check <r7>",
		Short: "evaluate one candidate r7",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 || n > int(teleporter.MaxWord) {
				return fmt.Errorf("r7 must be an integer in [0, %d]", teleporter.MaxWord)
			}
			if start0 < 0 || start0 > int(teleporter.MaxWord) ||
				start1 < 0 || start1 > int(teleporter.MaxWord) ||
				target < 0 || target > int(teleporter.MaxWord) {
				return fmt.Errorf("register values must be in [0, %d]", teleporter.MaxWord)
			}

			result, err := teleporter.Evaluate(
				teleporter.Word(start0), teleporter.Word(start1), teleporter.Word(n))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "f(%d, %d) = %d for r7=%d\n", start0, start1, result, n)
			if result == teleporter.Word(target) {
				fmt.Fprintln(cmd.OutOrStdout(), "it worked!")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&start0, "start0", 4, "initial r0")
	flags.IntVar(&start1, "start1", 1, "initial r1")
	flags.IntVar(&target, "target", 6, "value the evaluation must hit")
	return cmd
}

// config prints the effective configuration after defaults, file and
// flags are merged.
func newConfigCmd(v *viper.Viper, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, *configPath)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
