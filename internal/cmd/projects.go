package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopdesk/internal/models"
	"shopdesk/internal/projects"
	"shopdesk/internal/schedule"
)

var (
	projectStatus string
	projectSearch string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Review projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in one status",
	Args:  cobra.NoArgs,
	RunE:  listProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsListCmd.Flags().StringVar(&projectStatus, "status", string(models.ProjectOngoing), "Status tab: ongoing or finished")
	projectsListCmd.Flags().StringVarP(&projectSearch, "search", "q", "", "Filter by title, name, service or created date")
}

func listProjects(cmd *cobra.Command, args []string) error {
	status, err := projects.ParseStatus(projectStatus)
	if err != nil {
		return fmt.Errorf("%w: %q", err, projectStatus)
	}

	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	if _, err := a.login(cmd.Context()); err != nil {
		return err
	}

	view := a.projects.NewView()
	view.SelectTab(cmd.Context(), string(status))
	view.Search(projectSearch)

	items := view.Visible()
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No projects found.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCLIENT\tSERVICE\tEXPECTED\tTASKS\tCREATED")
	for _, p := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID,
			p.Title,
			p.Name,
			p.Service,
			schedule.FormatShort(p.ExpectedDate, a.cfg.Timezone),
			len(p.Tasks),
			schedule.FormatLong(p.CreatedAt, a.cfg.Timezone),
		)
	}
	return w.Flush()
}
