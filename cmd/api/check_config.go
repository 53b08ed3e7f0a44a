package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cat-shelter/internal/platform/config"
)

func checkConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and print the effective values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			// Las api keys no se imprimen.
			for _, svc := range []*config.ServiceConfig{&cfg.Services.Auth, &cfg.Services.Billing, &cfg.Services.Breeds, &cfg.Services.Prices} {
				if svc.APIKey != "" {
					svc.APIKey = "***"
				}
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
