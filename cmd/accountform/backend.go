package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-accountform/pkg/backendstub"
	"github.com/goliatone/go-accountform/pkg/server"
)

func newBackendCmd(flags *globalFlags) *cobra.Command {
	var (
		listen string
		fail   bool
	)

	cmd := &cobra.Command{
		Use:   "backend",
		Short: "Run the development user service",
		Long: `backend serves POST /api/users/register, validating each payload
against the bundled OpenAPI contract and keeping accounts in memory.
Use --fail to answer every registration with 500.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(flags)
			if err != nil {
				return err
			}
			defer env.close()

			if listen != "" {
				env.cfg.Stub.ListenAddr = listen
			}
			if cmd.Flags().Changed("fail") {
				env.cfg.Stub.Fail = fail
			}

			stub, err := backendstub.New(cmd.Context(),
				backendstub.WithFailMode(env.cfg.Stub.Fail),
				backendstub.WithLogger(env.logger),
			)
			if err != nil {
				return err
			}
			return runServers(cmd.Context(), env.logger, server.NewHTTPServer(env.cfg.Stub.ListenAddr, stub.Routes()))
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address; overrides stub.listen_addr")
	cmd.Flags().BoolVar(&fail, "fail", false, "Reject every registration with 500")
	return cmd
}
