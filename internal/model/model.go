// Package model содержит сущности, которыми дашборд прачечной обменивается с удалённым API.
package model

import "time"

// Role описывает роль сотрудника.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePetugas Role = "petugas"
	RoleOwner   Role = "owner"
)

// Roles перечисляет известные роли в порядке показа в форме пользователя.
var Roles = []Role{RoleAdmin, RolePetugas, RoleOwner}

// In сообщает, входит ли роль в перечень.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}

// UserSummary содержит минимальные сведения о вошедшем пользователе.
type UserSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Credentials содержит логин и пароль для входа.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult описывает ответ API на успешный вход.
type LoginResult struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}

// User представляет учётную запись сотрудника.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserInput содержит данные формы создания и изменения пользователя.
type UserInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

// Outlet описывает филиал прачечной.
type Outlet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// OutletInput содержит данные формы филиала.
type OutletInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ListParams передаются в API как параметры запроса списка.
type ListParams struct {
	Page    int
	PerPage int
	Filters map[string]string
}
