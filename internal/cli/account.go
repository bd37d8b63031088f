package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/internal/staff/services"
)

func dashboardCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show staff and patient counts with the patient list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, err := load(cmd, a, patientPage)
			if err != nil {
				return err
			}
			dashboard := patientPage
			dashboard.cards = services.DashboardCards
			renderPage(cmd.OutOrStdout(), dashboard, ctl.Snapshot(search))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter patients by name")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	var form models.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new doctor or nurse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.interactive() && incomplete(form) {
				if err := registrationForm(&form).RunWithContext(cmd.Context()); err != nil {
					return err
				}
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			svc := services.NewRegistrationService(client, a.terminal(cmd.OutOrStdout()), a.logger)
			return svc.Register(cmd.Context(), form)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&form.Fullname, "fullname", "", "full name")
	flags.StringVar(&form.Email, "email", "", "email address")
	flags.StringVar(&form.Password, "password", "", "initial password")
	flags.StringVar(&form.Role, "role", "", "doctor or nurse")
	flags.StringVar(&form.Department, "department", "", "department name")
	return cmd
}

func incomplete(f models.Registration) bool {
	return f.Fullname == "" || f.Email == "" || f.Password == "" || f.Role == "" || f.Department == ""
}

// registrationForm asks for the fields not given as flags.
func registrationForm(f *models.Registration) *huh.Form {
	var fields []huh.Field
	if f.Fullname == "" {
		fields = append(fields, huh.NewInput().Title("Full name").Value(&f.Fullname))
	}
	if f.Email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&f.Email))
	}
	if f.Password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&f.Password))
	}
	if f.Role == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Role").
			Options(huh.NewOption("Doctor", "doctor"), huh.NewOption("Nurse", "nurse")).
			Value(&f.Role))
	}
	if f.Department == "" {
		fields = append(fields, huh.NewInput().Title("Department").Value(&f.Department))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}
