// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/myedspace/lms/internal/config"
	"github.com/myedspace/lms/internal/logging"
	"github.com/myedspace/lms/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// cfg is resolved once per invocation in PersistentPreRunE.
var cfg *config.Config

// NewRootCmd creates the root command for the LMS CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lms",
		Short: "MyEdSpace LMS - course content access control",
		Long: `The LMS CLI manages student enrolments and answers content access
questions: whether a student may open a piece of course content at a given
time, and which content a course currently exposes to them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path := configFile
			explicit := path != ""
			if !explicit {
				path = xdg.DefaultConfigFile()
			}

			var err error
			cfg, err = config.Load(path, explicit, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logging.SetDefault(cfg.Log.Service, version, cfg.Log.Format)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().String("database-url", "", "PostgreSQL connection URL")
	cmd.PersistentFlags().String("log-format", "json", `log format ("json" or "text")`)

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewValidateSeedsCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewContentCmd())
	cmd.AddCommand(NewEnrolCmd())

	return cmd
}
