package userservice

// Роли пользователей в UserService
const (
	RolePatient = "patient"
	RoleClinic  = "clinic"
)

// User модель пользователя из UserService
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`      // "patient" | "clinic"
	ClinicID *int64 `json:"clinic_id"` // Заполнено только для роли clinic
	Active   bool   `json:"active"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
