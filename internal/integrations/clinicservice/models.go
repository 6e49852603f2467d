package clinicservice

// Clinic модель клиники из каталога ClinicService
type Clinic struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	City   string `json:"city"`
	Active bool   `json:"active"`
}

// Specialization модель специализации клиники
type Specialization struct {
	ID              int64    `json:"id"`
	ClinicID        int64    `json:"clinic_id"`
	Name            string   `json:"name"`
	Active          bool     `json:"active"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
}

// ErrorResponse модель ошибки от ClinicService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
