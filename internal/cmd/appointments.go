package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopdesk/internal/appointments"
	"shopdesk/internal/models"
	"shopdesk/internal/schedule"
)

var (
	appointmentStatus string
	appointmentSearch string

	convertTitle        string
	convertExpectedDate string
	convertTasks        []string
	convertName         string
	convertService      string
	convertEmail        string
	convertContact      string
	convertAddress      string
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appt"},
	Short:   "Review and move appointments through their workflow",
}

var appointmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments in one status",
	Args:  cobra.NoArgs,
	RunE:  listAppointments,
}

var appointmentsContactedCmd = &cobra.Command{
	Use:   "contacted <id>",
	Short: "Toggle the contacted flag of a pending or accepted appointment",
	Args:  cobra.ExactArgs(1),
	RunE:  toggleContacted,
}

var appointmentsConvertCmd = &cobra.Command{
	Use:   "convert <id>",
	Short: "Finish an accepted appointment and create its project",
	Long: `Finish an accepted appointment and create an ongoing project from it.
Client fields are copied from the appointment unless overridden by flags.

The two steps are not atomic: if the project cannot be created the
appointment stays finished.`,
	Args: cobra.ExactArgs(1),
	RunE: convertAppointment,
}

func init() {
	rootCmd.AddCommand(appointmentsCmd)
	appointmentsCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	appointmentsCmd.AddCommand(appointmentsListCmd)
	appointmentsListCmd.Flags().StringVar(&appointmentStatus, "status", string(models.AppointmentPending), "Status tab: pending, accepted, cancelled or finished")
	appointmentsListCmd.Flags().StringVarP(&appointmentSearch, "search", "q", "", "Filter by name, contact number or preferred date")

	for _, action := range []appointments.Action{appointments.Accept, appointments.Cancel, appointments.Finish, appointments.Revert} {
		appointmentsCmd.AddCommand(newActionCmd(action))
	}

	appointmentsCmd.AddCommand(appointmentsContactedCmd)

	appointmentsCmd.AddCommand(appointmentsConvertCmd)
	f := appointmentsConvertCmd.Flags()
	f.StringVar(&convertTitle, "title", "", "Project title (required)")
	f.StringVar(&convertExpectedDate, "expected-date", "", "Expected completion date, YYYY-MM-DD (required, not today)")
	f.StringArrayVar(&convertTasks, "task", nil, "Project task; repeat for several")
	f.StringVar(&convertName, "name", "", "Override the client name")
	f.StringVar(&convertService, "service", "", "Override the service")
	f.StringVar(&convertEmail, "email", "", "Override the client email")
	f.StringVar(&convertContact, "contact-number", "", "Override the contact number")
	f.StringVar(&convertAddress, "address", "", "Override the address")
}

func listAppointments(cmd *cobra.Command, args []string) error {
	status, err := appointments.ParseStatus(appointmentStatus)
	if err != nil {
		return fmt.Errorf("%w: %q", err, appointmentStatus)
	}

	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	if _, err := a.login(cmd.Context()); err != nil {
		return err
	}

	view := a.appointments.NewView()
	view.SelectTab(cmd.Context(), string(status))
	view.Search(appointmentSearch)

	printAppointments(cmd.OutOrStdout(), view.Visible(), a)
	return nil
}

func printAppointments(out io.Writer, items []models.Appointment, a *app) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No appointments found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSERVICE\tCONTACT\tPREFERRED\tCONTACTED\tSTATUS")
	for _, appt := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
			appt.ID,
			appt.Name,
			appt.Service,
			appt.ContactNumber,
			schedule.FormatShort(appt.PreferredDate, a.cfg.Timezone),
			appt.Contacted,
			appt.Status,
		)
	}
	_ = w.Flush()
}

func newActionCmd(action appointments.Action) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <id>",
		Short: appointments.PromptFor(action).Title,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyAction(cmd, args[0], action)
		},
	}
}

func applyAction(cmd *cobra.Command, id string, action appointments.Action) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.login(ctx); err != nil {
		return err
	}

	appt, err := a.appointments.Find(ctx, id)
	if err != nil {
		return fmt.Errorf("appointment %s: %w", id, err)
	}
	next, err := appointments.Next(appt.Status, action)
	if err != nil {
		return fmt.Errorf("cannot %s a %s appointment: %w", action, appt.Status, err)
	}

	ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), appointments.PromptFor(action))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}

	if err := a.appointments.Apply(ctx, appt, action); err != nil {
		return err
	}

	tab := appointments.FollowTab(action)
	fmt.Fprintf(cmd.OutOrStdout(), "Appointment %s: %s -> %s.\n\n", appt.ID, appt.Status, next)
	printAppointments(cmd.OutOrStdout(), a.appointments.List(ctx, tab), a)
	return nil
}

func toggleContacted(cmd *cobra.Command, args []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.login(ctx); err != nil {
		return err
	}

	appt, err := a.appointments.Find(ctx, args[0])
	if err != nil {
		return fmt.Errorf("appointment %s: %w", args[0], err)
	}
	if err := a.appointments.ToggleContacted(ctx, appt); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Appointment %s contacted: %t.\n", appt.ID, !appt.Contacted)
	return nil
}

func convertAppointment(cmd *cobra.Command, args []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.login(ctx); err != nil {
		return err
	}

	appt, err := a.appointments.Find(ctx, args[0])
	if err != nil {
		return fmt.Errorf("appointment %s: %w", args[0], err)
	}

	conv := appointments.NewConversion(appt)
	conv.Title = convertTitle
	conv.ExpectedDate = convertExpectedDate
	override(&conv.Name, convertName)
	override(&conv.Service, convertService)
	override(&conv.Email, convertEmail)
	override(&conv.ContactNumber, convertContact)
	override(&conv.Address, convertAddress)
	for _, label := range convertTasks {
		conv.AddTask(label)
	}

	if err := a.appointments.ValidateConversion(conv); err != nil {
		return err
	}
	ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), appointments.PromptFor(appointments.Finish))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}

	if err := a.appointments.FinishAndConvert(ctx, appt, conv); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Appointment %s finished; project %q created with %d task(s).\n", appt.ID, conv.Title, len(conv.Tasks))
	return nil
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}
