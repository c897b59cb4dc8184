package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-accountform/pkg/contract"
)

func newContractCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Print the registration API contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch strings.ToLower(format) {
			case "yaml", "yml":
				_, err := cmd.OutOrStdout().Write(contract.Raw())
				return err
			case "json":
				out, err := contract.JSON(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, json)")
	return cmd
}
