package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook-hq/daybook/pkg/client"
)

var (
	apiFlag    string
	keyFlag    string
	configFlag string
	rootCmd    = &cobra.Command{
		Use:   "daybookctl",
		Short: "CLI client for the daybook REST API",
	}
)

// newClient resolves the API endpoint from flags and the optional config
// file, flags winning.
func newClient() (*client.Client, error) {
	cfg, err := loadConfig(configFlag)
	if err != nil {
		return nil, err
	}
	api := cfg.API
	if apiFlag != "" {
		api = apiFlag
	}
	if api == "" {
		api = "http://localhost:8080"
	}
	key := cfg.Key
	if keyFlag != "" {
		key = keyFlag
	}
	return client.New(api, key), nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "", "Daybook service base URL (default http://localhost:8080)")
	rootCmd.PersistentFlags().StringVarP(&keyFlag, "key", "k", "", "API key")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Config file (default ~/.daybookctl.yaml)")

	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(entryCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(todoCmd())
	rootCmd.AddCommand(healthCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
