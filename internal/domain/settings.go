package domain

import "time"

// Settings holds the site-wide presentation record: banner, logo and
// contact details rendered on the public page. The table is constrained
// to a single row; see migrations/00005_create_settings_table.sql.
type Settings struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Subtitle    string    `json:"subtitle" db:"subtitle"`
	Address     string    `json:"address" db:"address"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	HeaderURL   string    `json:"header_url" db:"header_url"`
	CompanyLogo string    `json:"company_logo" db:"company_logo"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
