// Package promptscmd exposes the prompt registry for inspection and
// structural validation.
package promptscmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nbcoach/nbcoach/internal/appstate"
	"github.com/nbcoach/nbcoach/internal/prompt"
	"github.com/nbcoach/nbcoach/internal/ui/output"
	"github.com/spf13/cobra"
)

// PromptsCmd is the parent command for prompt inspection.
var PromptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect and validate prompt templates",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured prompt templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := activeRegistry()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVARIABLES\tFORMAT")
		for _, entry := range registry.Entries() {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				entry.Name,
				strings.Join(entry.InputVariables, ", "),
				entry.TemplateFormat,
			)
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a prompt template's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := activeRegistry()
		if err != nil {
			return err
		}

		entry, err := registry.Get(args[0])
		if err != nil {
			return err
		}

		fmt.Println(output.Header(entry.Name))
		fmt.Println(output.Dim(fmt.Sprintf("variables: %s  format: %s",
			strings.Join(entry.InputVariables, ", "), entry.TemplateFormat)))
		fmt.Println()
		fmt.Println(entry.Content)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a prompts file",
	Long: `Validate the structure of a prompts YAML file: unique names, a
recognized and consistent template format, and agreement between each
entry's declared input variables and the placeholders in its content.
Without a file argument, the active prompts file is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			path = appstate.Get().Config.PromptsFile
		}

		var registry *prompt.Registry
		var err error
		if path == "" {
			registry = prompt.Default()
			fmt.Println(output.Dim("checking embedded prompts"))
		} else {
			registry, err = prompt.LoadFile(path)
			if err != nil {
				return err
			}
		}

		fmt.Printf("ok: %d prompt(s): %s\n", registry.Len(), strings.Join(registry.Names(), ", "))
		return nil
	},
}

func activeRegistry() (*prompt.Registry, error) {
	cfg := appstate.Get().Config
	if cfg.PromptsFile != "" {
		return prompt.LoadFile(cfg.PromptsFile)
	}
	return prompt.Default(), nil
}

func init() {
	PromptsCmd.AddCommand(listCmd, showCmd, checkCmd)
}
