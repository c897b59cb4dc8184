package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-accountform"
	"github.com/goliatone/go-accountform/internal/metrics"
	"github.com/goliatone/go-accountform/pkg/client"
	"github.com/goliatone/go-accountform/pkg/registration"
	"github.com/goliatone/go-accountform/pkg/renderers/tui"
)

func newPromptCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the registration form interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(flags)
			if err != nil {
				return err
			}
			defer env.close()

			endpoint := env.cfg.Backend.Endpoint()
			form, err := accountform.BuildForm(endpoint, env.cfg.UI.Schema)
			if err != nil {
				return err
			}

			runner, err := tui.New(form,
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithLogger(env.logger),
			)
			if err != nil {
				return err
			}

			session, err := accountform.NewSession(endpoint,
				[]client.Option{
					client.WithTimeout(env.cfg.Backend.Timeout),
					client.WithLogger(env.logger),
				},
				registration.WithLogger(env.logger),
				registration.WithPhaseObserver(metrics.Observe),
			)
			if err != nil {
				return err
			}

			env.logger.Infow("terminal session started", "session", session.ID(), "endpoint", endpoint)
			if _, err := runner.Run(cmd.Context(), session); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
					return nil
				}
				return err
			}
			return nil
		},
	}
}
