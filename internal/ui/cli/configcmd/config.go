// Package configcmd prints the merged configuration and its schema.
package configcmd

import (
	"encoding/json"
	"fmt"

	"github.com/nbcoach/nbcoach/internal/appstate"
	"github.com/nbcoach/nbcoach/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigCmd is the parent command for configuration.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appstate.Get().Config

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.GenerateJSONSchema()
		if err != nil {
			return fmt.Errorf("failed to generate schema: %w", err)
		}

		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(showCmd, schemaCmd)
}
