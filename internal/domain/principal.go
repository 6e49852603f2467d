package domain

// Role роль аутентифицированного пользователя
type Role string

const (
	RolePatient Role = "patient"
	RoleClinic  Role = "clinic"
)

// Principal разрешенный аутентифицированный субъект операции
// Собирается один раз на границе операции из данных UserService
// и передается явно, вместо неявных полей request context
type Principal struct {
	UserID   int64
	Name     string
	Role     Role
	ClinicID *int64 // Заполнено только для роли clinic
}

// IsPatient returns true if the principal is a patient
func (p *Principal) IsPatient() bool {
	return p.Role == RolePatient
}

// OwnsClinic returns true if the principal manages the given clinic
func (p *Principal) OwnsClinic(clinicID int64) bool {
	return p.Role == RoleClinic && p.ClinicID != nil && *p.ClinicID == clinicID
}
