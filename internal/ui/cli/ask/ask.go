// Package ask implements the four tutoring commands. Each wraps the
// student's code in one of the prompt templates and sends it to the
// configured model.
package ask

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nbcoach/nbcoach/internal/config"
	"github.com/nbcoach/nbcoach/internal/shared"
	"github.com/nbcoach/nbcoach/internal/ui/output"
	"github.com/spf13/cobra"
)

var (
	modelFlag       string
	temperatureFlag float64
	maxTokensFlag   int
	noCacheFlag     bool
	promptsFlag     string
	streamFlag      bool
)

// tutorCommands maps each command to its prompt entry.
var tutorCommands = []struct {
	use        string
	promptName string
	short      string
}{
	{"explain", "explain question", "Explain what an exercise is asking for"},
	{"hint", "hint", "Get a hint without the solution"},
	{"partial-solve", "partial-solve", "Get a scaffolded partial solution"},
	{"fully-explain", "fully-explain", "Get a full solution with a walkthrough"},
}

// Commands returns the tutoring commands for the root command.
func Commands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(tutorCommands))
	for _, tc := range tutorCommands {
		cmds = append(cmds, newTutorCmd(tc.use, tc.promptName, tc.short))
	}
	return cmds
}

// ApplyOverrides copies changed flag values into the runtime config
// overrides. Flags the executed command does not define are ignored.
func ApplyOverrides(cmd *cobra.Command, overrides *config.RuntimeOverrides) {
	f := cmd.Flags()
	if f.Changed("model") {
		overrides.ActiveModel = &modelFlag
	}
	if f.Changed("temperature") {
		overrides.Temperature = &temperatureFlag
	}
	if f.Changed("max-tokens") {
		overrides.MaxTokens = &maxTokensFlag
	}
	if f.Changed("no-cache") {
		overrides.NoCache = &noCacheFlag
	}
	if f.Changed("prompts") {
		overrides.PromptsFile = &promptsFlag
	}
}

func newTutorCmd(use, promptName, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Long:  short + `. The exercise is read from the file argument, or from stdin when no file is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}

			svc, err := shared.InitializeTutorService(cmd.Context())
			if err != nil {
				return err
			}

			if streamFlag {
				fmt.Println(output.Header(use))
				exchange, err := svc.AskStream(cmd.Context(), promptName, input, func(chunk []byte) error {
					_, err := os.Stdout.Write(chunk)
					return err
				})
				if err != nil {
					return err
				}
				fmt.Println()
				if exchange.CacheHit {
					fmt.Println(output.Dim("(cached)"))
				}
				return nil
			}

			exchange, err := svc.Ask(cmd.Context(), promptName, input)
			if err != nil {
				return err
			}

			fmt.Println(output.Header(use))
			fmt.Println(exchange.Response)
			if exchange.CacheHit {
				fmt.Println(output.Dim("(cached)"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model to use (a key from the models config)")
	cmd.Flags().Float64VarP(&temperatureFlag, "temperature", "t", 0, "Sampling temperature")
	cmd.Flags().IntVar(&maxTokensFlag, "max-tokens", 0, "Maximum response tokens")
	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the response cache")
	cmd.Flags().StringVar(&promptsFlag, "prompts", "", "Path to a prompts YAML file")
	cmd.Flags().BoolVar(&streamFlag, "stream", false, "Stream the response as it arrives")

	return cmd
}

// readInput reads the exercise text from the file argument or stdin.
func readInput(args []string) (string, error) {
	var data []byte
	var err error

	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read exercise file: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	input := strings.TrimSpace(string(data))
	if input == "" {
		return "", fmt.Errorf("no exercise text provided")
	}
	return input, nil
}
