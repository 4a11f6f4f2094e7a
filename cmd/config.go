package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skimtext/skim/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Skim configuration",
	Long:  `Generate and validate skim.yaml configuration files.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a configuration file template",
	Long: `Writes a skim.yaml template with all available options and
their defaults.

Example:
  skim config init
  skim config init --output ~/.skim.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file",
	Long: `Checks a configuration file for errors. With no argument,
validates skim.yaml in the current directory.

Example:
  skim config validate
  skim config validate ~/.skim.yaml`,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringP("output", "o", "skim.yaml", "output file path")
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(output); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", output)
	}

	if err := os.WriteFile(output, []byte(config.GenerateTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Wrote %s\n", output)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := "skim.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s is valid\n", path)
	fmt.Printf("  language: %s\n", cfg.Summary.Language)
	if cfg.Summary.Sentences > 0 {
		fmt.Printf("  sentences: %d\n", cfg.Summary.Sentences)
	} else {
		fmt.Printf("  ratio: %g\n", cfg.Summary.Ratio)
	}
	fmt.Printf("  server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("  cache: enabled=%v max_entries=%d ttl=%s\n",
		cfg.Cache.Enabled, cfg.Cache.MaxEntries, cfg.Cache.TTL)
	fmt.Printf("  tracing: enabled=%v exporter=%s\n",
		cfg.Telemetry.Tracing.Enabled, cfg.Telemetry.Tracing.Exporter)
	return nil
}
