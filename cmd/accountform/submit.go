package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-accountform"
	"github.com/goliatone/go-accountform/internal/metrics"
	"github.com/goliatone/go-accountform/pkg/client"
	"github.com/goliatone/go-accountform/pkg/registration"
)

func newSubmitCmd(flags *globalFlags) *cobra.Command {
	var (
		data     registration.FormData
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and post one registration from flags",
		Example: `  accountform submit --first-name Jane --last-name Doe \
    --email jane@example.com --phone 5551234567 --gender Female --proficiency Fluent`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(flags)
			if err != nil {
				return err
			}
			defer env.close()

			if endpoint == "" {
				endpoint = env.cfg.Backend.Endpoint()
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
			for field, value := range data.Values() {
				if err := session.Change(field, value); err != nil {
					return err
				}
			}

			result := session.Submit(cmd.Context())
			out := cmd.OutOrStdout()
			switch result.Phase {
			case registration.PhaseRejectedLocally:
				for _, field := range result.Errors.Fields() {
					fmt.Fprintf(out, "%s: %s\n", field, result.Errors.Message(field))
				}
				return fmt.Errorf("registration rejected: %d invalid field(s)", len(result.Errors))
			case registration.PhaseSucceeded:
				fmt.Fprintln(out, result.Notice.Message)
				return nil
			case registration.PhaseFailed:
				fmt.Fprintln(out, result.Notice.Message)
				return result.Err
			default:
				return result.Err
			}
		},
	}

	cmd.Flags().StringVar(&data.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&data.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&data.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&data.PhoneNumber, "phone", "", "Ten digit phone number")
	cmd.Flags().StringVar(&data.Gender, "gender", "", "Male or Female")
	cmd.Flags().StringVar(&data.Proficiency, "proficiency", "", "Language proficiency")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Registration URL; overrides the configured backend")
	return cmd
}
