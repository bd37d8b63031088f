package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/internal/staff/services"
	"github.com/c14220110/poliklinik-admin/pkg/listctl"
)

// page describes how one entity list is shown in the terminal.
type page[T any] struct {
	use     string
	short   string
	headers []string
	row     func(T) []string
	pick    func(*services.Catalog) *listctl.Controller[T]
	cards   func(counts map[string]int) []models.StatCard
}

func staffRow(id int64, p models.StaffProfile) []string {
	return []string{strconv.FormatInt(id, 10), p.Fullname, p.Email, p.ContactNumber, p.Department}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

var staffHeaders = []string{"ID", "Name", "Email", "Contact", "Department"}

var doctorPage = page[models.Doctor]{
	use:     services.EntityDoctors,
	short:   "List, edit and delete doctors",
	headers: staffHeaders,
	row:     func(d models.Doctor) []string { return staffRow(d.DoctorID, d.StaffProfile) },
	pick:    func(c *services.Catalog) *listctl.Controller[models.Doctor] { return c.Doctors },
	cards: func(counts map[string]int) []models.StatCard {
		return services.StatsCards(counts, services.CountDoctors)
	},
}

var nursePage = page[models.Nurse]{
	use:     services.EntityNurses,
	short:   "List, edit and delete nurses",
	headers: staffHeaders,
	row:     func(n models.Nurse) []string { return staffRow(n.NurseID, n.StaffProfile) },
	pick:    func(c *services.Catalog) *listctl.Controller[models.Nurse] { return c.Nurses },
	cards: func(counts map[string]int) []models.StatCard {
		return services.StatsCards(counts, services.CountNurses)
	},
}

var patientPage = page[models.Patient]{
	use:     services.EntityPatients,
	short:   "List and delete patients",
	headers: []string{"ID", "Name", "Admission", "Nurse", "Doctors"},
	row: func(p models.Patient) []string {
		return []string{strconv.FormatInt(p.ID, 10), p.Name, p.AdmissionDate, orDash(p.NurseName), orDash(p.DoctorName)}
	},
	pick: func(c *services.Catalog) *listctl.Controller[models.Patient] { return c.Patients },
	cards: func(counts map[string]int) []models.StatCard {
		return services.StatsCards(counts, services.CountPatients)
	},
}

var reportPage = page[models.Report]{
	use:     services.EntityReports,
	short:   "List and delete incident reports",
	headers: []string{"ID", "Reporter", "Role", "Department", "Issue", "Created"},
	row: func(r models.Report) []string {
		return []string{strconv.FormatInt(r.ID, 10), r.Fullname, models.RoleLabel(r.Role), r.Department, r.IssueDescription, r.CreatedAt}
	},
	pick: func(c *services.Catalog) *listctl.Controller[models.Report] { return c.Reports },
	cards: func(counts map[string]int) []models.StatCard {
		return services.StatsCards(counts, services.CountReports)
	},
}

func entityCmd[T any](a *app, p page[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   p.use,
		Short: p.short,
	}
	cmd.AddCommand(listCmd(a, p), deleteCmd(a, p))
	if p.use == services.EntityDoctors || p.use == services.EntityNurses {
		cmd.AddCommand(editCmd(a, p))
	}
	return cmd
}

// load refreshes the controller of p with a terminal notifier bound to out.
func load[T any](cmd *cobra.Command, a *app, p page[T]) (*listctl.Controller[T], error) {
	catalog, err := a.catalog(a.terminal(cmd.OutOrStdout()))
	if err != nil {
		return nil, err
	}
	ctl := p.pick(catalog)
	if err := ctl.Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	return ctl, nil
}

func listCmd[T any](a *app, p page[T]) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the list, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, err := load(cmd, a, p)
			if err != nil {
				return err
			}
			renderPage(cmd.OutOrStdout(), p, ctl.Snapshot(search))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search term")
	return cmd
}

func editCmd[T any](a *app, p page[T]) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields, e.g. --set email=a@b.co --set contact_number=0812345678",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := services.ParseID(args[0])
			if err != nil {
				return err
			}
			fields, err := parseSets(sets)
			if err != nil {
				return err
			}

			ctl, err := load(cmd, a, p)
			if err != nil {
				return err
			}
			if err := ctl.BeginEditByID(id); err != nil {
				return err
			}
			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				if err := ctl.UpdateDraftField(name, fields[name]); err != nil {
					return err
				}
			}
			return ctl.CommitEdit(cmd.Context())
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value to change (repeatable)")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func parseSets(sets []string) (map[string]string, error) {
	fields := make(map[string]string, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected field=value", s)
		}
		fields[strings.TrimSpace(name)] = value
	}
	return fields, nil
}

func deleteCmd[T any](a *app, p page[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := services.ParseID(args[0])
			if err != nil {
				return err
			}
			ctl, err := load(cmd, a, p)
			if err != nil {
				return err
			}
			deleted, err := ctl.DeleteEntity(cmd.Context(), id)
			if err != nil {
				return err
			}
			if deleted {
				renderCards(cmd.OutOrStdout(), p.cards(ctl.Counts()))
			}
			return nil
		},
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 2)
)

func renderPage[T any](w io.Writer, p page[T], snap listctl.Snapshot[T]) {
	renderCards(w, p.cards(snap.Counts))
	renderTable(w, p.headers, p.row, snap.Items)
	if snap.Search != "" {
		fmt.Fprintln(w, hintStyle.Render(fmt.Sprintf("%d of %d shown for %q", len(snap.Items), snap.Total, snap.Search)))
	}
}

func renderCards(w io.Writer, cards []models.StatCard) {
	if len(cards) == 0 {
		return
	}
	boxes := make([]string, 0, len(cards))
	for _, card := range cards {
		boxes = append(boxes, cardStyle.Render(fmt.Sprintf("%s\n%d", card.Title, card.Count)))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
}

func renderTable[T any](w io.Writer, headers []string, row func(T) []string, items []T) {
	if len(items) == 0 {
		fmt.Fprintln(w, hintStyle.Render("No data"))
		return
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, row(item))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(r, _ int) lipgloss.Style {
			if r == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}
