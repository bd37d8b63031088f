package models

// Patient adalah satu baris dari GET /patients. DoctorName bisa berisi
// beberapa nama dokter yang dipisah koma.
type Patient struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	AdmissionDate string `json:"admissionDate"`
	NurseName     string `json:"nurseName"`
	DoctorName    string `json:"doctorName"`
}

// Report adalah laporan masalah dari dokter atau perawat.
type Report struct {
	ID               int64  `json:"id"`
	Fullname         string `json:"fullname"`
	Role             string `json:"role"`
	Department       string `json:"department"`
	IssueDescription string `json:"issue_description"`
	CreatedAt        string `json:"created_at"`
}

// RoleLabel mengembalikan nama tampilan untuk role staf.
func RoleLabel(role string) string {
	switch role {
	case "doctor":
		return "Doctor"
	case "nurse":
		return "Nurse"
	default:
		return role
	}
}
