// Package history lists and manages recorded tutoring exchanges.
package history

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/nbcoach/nbcoach/internal/appstate"
	"github.com/nbcoach/nbcoach/internal/repository"
	"github.com/nbcoach/nbcoach/internal/shared"
	"github.com/nbcoach/nbcoach/internal/ui/output"
	"github.com/spf13/cobra"
)

var limitFlag int

// HistoryCmd is the parent command for exchange history.
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past tutoring exchanges",
}

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}

		exchanges, err := repo.List(cmd.Context(), limitFlag)
		if err != nil {
			return fmt.Errorf("failed to list exchanges: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWHEN\tPROMPT\tMODEL\tCACHED\tINPUT")
		for _, e := range exchanges {
			preview := strings.ReplaceAll(e.Input, "\n", " ")
			if len(preview) > 40 {
				preview = preview[:37] + "..."
			}
			cached := ""
			if e.CacheHit {
				cached = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID.String()[:8],
				e.CreatedAt.Format(time.RFC822),
				e.PromptName,
				e.ModelName,
				cached,
				preview,
			)
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one exchange in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}

		id, err := resolveID(cmd, repo, args[0])
		if err != nil {
			return err
		}

		e, err := repo.GetByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Println(output.Header(fmt.Sprintf("%s (%s, %s/%s)", e.PromptName, e.CreatedAt.Format(time.RFC822), e.Provider, e.ModelName)))
		fmt.Println()
		fmt.Println(output.Dim("exercise:"))
		fmt.Println(e.Input)
		fmt.Println()
		fmt.Println(output.Dim("answer:"))
		fmt.Println(e.Response)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an exchange",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}

		id, err := resolveID(cmd, repo, args[0])
		if err != nil {
			return err
		}

		if err := repo.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("deleted", args[0])
		return nil
	},
}

func openRepo() (repository.ExchangeRepository, error) {
	cfg := appstate.Get().Config
	_, repo, err := shared.OpenStores(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// resolveID accepts a full UUID or the 8-char prefix the ls output
// shows.
func resolveID(cmd *cobra.Command, repo repository.ExchangeRepository, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	exchanges, err := repo.List(cmd.Context(), 0)
	if err != nil {
		return uuid.Nil, err
	}
	for _, e := range exchanges {
		if strings.HasPrefix(e.ID.String(), arg) {
			return e.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("no exchange matching id %q", arg)
}

func init() {
	listCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of exchanges to show")
	HistoryCmd.AddCommand(listCmd, showCmd, rmCmd)
}
