package models

// Registration adalah body POST /register.
type Registration struct {
	Fullname   string `json:"fullname" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=doctor nurse"`
	Department string `json:"department" validate:"required"`
}

// AdminProfile adalah profil admin yang sedang login.
type AdminProfile struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// StatCard adalah satu kartu statistik di halaman dashboard.
type StatCard struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Count int    `json:"count"`
}
