package userservice

// RoleBarber роль барбера в UserService
const RoleBarber = "barbeiro"

// User модель пользователя из UserService
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// IsActiveBarber returns true if the user can receive appointments
func (u *User) IsActiveBarber() bool {
	return u.Role == RoleBarber && u.IsActive
}

// Barber барбер, которому можно записаться
type Barber struct {
	ID   int64
	Name string
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
