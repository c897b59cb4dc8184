// Package main provides the accountform binary: a terminal and browser front
// end for the account registration form plus a development backend.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-accountform/internal/config"
	"github.com/goliatone/go-accountform/internal/logger"
)

const appName = "accountform"

// Version is stamped at build time.
var Version = "dev"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	envFile    string
	logLevel   string
	logDir     string
}

// runtimeEnv is what a subcommand needs after flags are parsed.
type runtimeEnv struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Account registration form",
		Long: `accountform collects a new account (name, email, phone, gender and
language proficiency), validates it and posts it to the user service.

It can run as an interactive terminal prompt, as a small web server that
renders the form, or as a one-shot submitter. A development backend that
honours the same contract is included.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Dotenv file applied before environment overrides")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	cmd.PersistentFlags().StringVar(&flags.logDir, "log-dir", "", "Directory for the rotated JSON log; overrides config")

	cmd.AddCommand(
		newPromptCmd(flags),
		newServeCmd(flags),
		newSubmitCmd(flags),
		newBackendCmd(flags),
		newContractCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

// setup loads configuration and builds the logger.
func setup(flags *globalFlags) (*runtimeEnv, error) {
	cfg, err := config.Load(config.Options{File: flags.configPath, EnvFile: flags.envFile})
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logDir != "" {
		cfg.Log.Dir = flags.logDir
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Dir: cfg.Log.Dir})
	if err != nil {
		return nil, err
	}
	return &runtimeEnv{cfg: cfg, logger: log}, nil
}

func (e *runtimeEnv) close() {
	_ = e.logger.Sync()
}
