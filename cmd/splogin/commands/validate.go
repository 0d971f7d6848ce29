package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/splogin/splogin/internal/config"
	"github.com/splogin/splogin/internal/validate"
)

// NewValidateCommand checks the local setup: both stored credentials
// and browser availability. The command is advisory and always exits
// zero; the report tells the user what to repair.
func NewValidateCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	var (
		fix   bool
		input validate.FixInput
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check credentials and browser availability",
		Long: `Runs three independent checks: the stored Spotify credential, the
stored Home Assistant credential including an API probe, and the
availability of a headless browser. With --fix, missing credentials
are stored (from flags or prompts) and a missing browser install is
attempted. An unreachable instance is reported but never repaired.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cfg.Logger

			orch := validate.New(
				deps.userManager(cfg),
				deps.hassManager(cfg),
				deps.engine(log),
				log,
			)
			orch.Fix = fix
			orch.Input = input
			if deps.CheckInstance != nil {
				orch.CheckInstance = deps.CheckInstance
			}

			report := orch.Run(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CHECK\tSTATUS\tDETAIL")
			for _, result := range report.Results() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", result.Name, result.Outcome, result.Detail)
			}
			w.Flush()

			passed := report.PassedCount()
			total := len(report.Results())
			if passed == total {
				log.Info("%d/%d checks passed", passed, total)
			} else {
				log.Warn("%d/%d checks passed", passed, total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "repair missing credentials and browser install")
	cmd.Flags().StringVar(&input.Username, "username", "", "Spotify username for --fix")
	cmd.Flags().StringVar(&input.Password, "password", "", "Spotify password for --fix")
	cmd.Flags().StringVar(&input.InstanceURL, "url", "", "Home Assistant instance URL for --fix")
	cmd.Flags().StringVar(&input.Token, "token", "", "Home Assistant token for --fix")

	return cmd
}
