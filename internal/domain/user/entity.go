package user

import (
	"strings"
	"time"
)

// User 用户实体（聚合根）
// Password保存bcrypt哈希，不对外暴露
type User struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
	Password  string
	Admin     bool
	CreatedAt time.Time
}

// NewUser 创建新用户（工厂方法），hashedPassword必须是bcrypt哈希
func NewUser(firstName, lastName, email, hashedPassword string, admin bool) *User {
	return &User{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     NormalizeEmail(email),
		Password:  hashedPassword,
		Admin:     admin,
		CreatedAt: time.Now(),
	}
}

// FullName 姓名
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail 邮箱统一小写、去空格
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
