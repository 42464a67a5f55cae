package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/deepscout/internal/infra/config"
	"github.com/matiasleandrokruk/deepscout/internal/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "deepscout",
	Short: "Deep research MCP server",
	Long: `deepscout exposes deep research tools over the Model Context Protocol,
translating tool calls into requests against external generative AI providers.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.Init(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")

	rootCmd.AddCommand(newVersionCmd())
	setupServeCmd()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
