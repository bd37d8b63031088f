package services

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/pkg/apiclient"
	"github.com/c14220110/poliklinik-admin/pkg/listctl"
)

// Nama entity dan counter yang dipakai di URL, websocket topic dan JSON.
const (
	EntityDoctors  = "doctors"
	EntityNurses   = "nurses"
	EntityPatients = "patients"
	EntityReports  = "reports"

	CountDoctors  = "doctorCount"
	CountNurses   = "nurseCount"
	CountPatients = "patientCount"
	CountReports  = "reportCount"
)

// Catalog memegang satu controller untuk setiap halaman daftar di console.
type Catalog struct {
	Doctors  *listctl.Controller[models.Doctor]
	Nurses   *listctl.Controller[models.Nurse]
	Patients *listctl.Controller[models.Patient]
	Reports  *listctl.Controller[models.Report]
}

func NewCatalog(client *apiclient.Client, notifier listctl.Notifier, logger zerolog.Logger) (*Catalog, error) {
	opt := listctl.WithLogger(logger)

	doctors, err := listctl.New(DoctorConfig(), apiclient.NewResource[models.Doctor](client, EntityDoctors), notifier, opt)
	if err != nil {
		return nil, err
	}
	nurses, err := listctl.New(NurseConfig(client.Counter("/nurses/count", CountNurses)), apiclient.NewResource[models.Nurse](client, EntityNurses), notifier, opt)
	if err != nil {
		return nil, err
	}
	patients, err := listctl.New(PatientConfig(
		client.Counter("/doctors/count", CountDoctors),
		client.Counter("/nurses/count", CountNurses),
	), apiclient.NewResource[models.Patient](client, EntityPatients), notifier, opt)
	if err != nil {
		return nil, err
	}
	reports, err := listctl.New(ReportConfig(), apiclient.NewResource[models.Report](client, EntityReports), notifier, opt)
	if err != nil {
		return nil, err
	}

	return &Catalog{Doctors: doctors, Nurses: nurses, Patients: patients, Reports: reports}, nil
}

// DoctorConfig: jumlah dokter dihitung dari panjang daftar setelah refresh
// dan hapus, karena halaman dokter tidak memanggil endpoint count.
func DoctorConfig() listctl.Config[models.Doctor] {
	return listctl.Config[models.Doctor]{
		Entity:     EntityDoctors,
		Noun:       "doctor",
		ID:         func(d models.Doctor) int64 { return d.DoctorID },
		SearchText: func(d models.Doctor) []string { return []string{d.Fullname} },
		SetField:   func(d *models.Doctor, field, value string) error { return d.SetField(field, value) },
		Validate:   func(d models.Doctor) error { return d.Validate() },
		Payload:    func(d models.Doctor) any { return d.UpdatePayload() },
		Counters: []listctl.Counter{
			{Name: CountDoctors},
		},
	}
}

// NurseConfig: jumlah perawat diambil dari /nurses/count bersamaan dengan
// daftar, lalu dikurangi satu setiap kali perawat dihapus.
func NurseConfig(count listctl.CountFunc) listctl.Config[models.Nurse] {
	return listctl.Config[models.Nurse]{
		Entity:     EntityNurses,
		Noun:       "nurse",
		ID:         func(n models.Nurse) int64 { return n.NurseID },
		SearchText: func(n models.Nurse) []string { return []string{n.Fullname} },
		SetField:   func(n *models.Nurse, field, value string) error { return n.SetField(field, value) },
		Validate:   func(n models.Nurse) error { return n.Validate() },
		Payload:    func(n models.Nurse) any { return n.UpdatePayload() },
		Counters: []listctl.Counter{
			{Name: CountNurses, Fetch: count, TrackDeletes: true},
		},
	}
}

// PatientConfig dipakai halaman dashboard. Hanya jumlah pasien yang ikut
// berubah saat pasien dihapus; jumlah dokter dan perawat tetap seperti
// hasil fetch.
func PatientConfig(doctorCount, nurseCount listctl.CountFunc) listctl.Config[models.Patient] {
	return listctl.Config[models.Patient]{
		Entity:     EntityPatients,
		Noun:       "patient",
		ID:         func(p models.Patient) int64 { return p.ID },
		SearchText: func(p models.Patient) []string { return []string{p.Name} },
		Counters: []listctl.Counter{
			{Name: CountPatients},
			{Name: CountDoctors, Fetch: doctorCount},
			{Name: CountNurses, Fetch: nurseCount},
		},
		Messages: listctl.Messages{
			DeleteConfirmTitle: "Confirm deletion",
		},
	}
}

func ReportConfig() listctl.Config[models.Report] {
	return listctl.Config[models.Report]{
		Entity:     EntityReports,
		Noun:       "report",
		ID:         func(r models.Report) int64 { return r.ID },
		SearchText: func(r models.Report) []string { return []string{r.Fullname, r.IssueDescription} },
		Counters: []listctl.Counter{
			{Name: CountReports},
		},
		Messages: listctl.Messages{
			DeleteConfirmTitle: "Do you want to delete this report?",
			DeleteConfirmText:  "This action cannot be undone",
			DeleteFailed:       "Unable to delete the report, please try again",
		},
	}
}

var cardTitles = map[string]string{
	CountDoctors:  "Doctors",
	CountNurses:   "Nurses",
	CountPatients: "Patients",
	CountReports:  "Reports",
}

// StatsCards membangun kartu statistik di atas daftar sesuai urutan order.
func StatsCards(counts map[string]int, order ...string) []models.StatCard {
	cards := make([]models.StatCard, 0, len(order))
	for _, key := range order {
		count, ok := counts[key]
		if !ok {
			continue
		}
		title := cardTitles[key]
		if title == "" {
			title = key
		}
		cards = append(cards, models.StatCard{Key: key, Title: title, Count: count})
	}
	return cards
}

// DashboardCards mengembalikan kartu dokter, perawat dan pasien untuk dashboard.
func DashboardCards(counts map[string]int) []models.StatCard {
	return StatsCards(counts, CountDoctors, CountNurses, CountPatients)
}

// ParseID membaca id entity dari path atau argumen CLI.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
