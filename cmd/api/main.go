package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

// @title        Cat Shelter API
// @version      1.0
// @description  Facade de adopción: catálogo, compras y favoritos compuestos desde billing, breeds y prices.
// @BasePath     /
func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "cat-shelter",
		Short:         "Cat shelter aggregation facade",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: $SHELTER_CONFIG)")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(checkConfigCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
