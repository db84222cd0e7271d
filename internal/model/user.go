package model

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "SERVICE_PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole нормализует роль из API. Старые версии бэкенда отдают
// "PROVIDER" вместо "SERVICE_PROVIDER".
func ParseRole(raw string) Role {
	switch raw {
	case "PROVIDER", "SERVICE_PROVIDER":
		return RoleProvider
	case "ADMIN":
		return RoleAdmin
	default:
		return RoleCustomer
	}
}

// User запись пользователя из админского списка
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt Timestamp `json:"createdAt"`
}
