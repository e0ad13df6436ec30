package models

// User is an account row. Games reference users by id as their creator.
type User struct {
	Id       string
	Email    string
	Username string
	Password string // bcrypt hash
}

type UserDto struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Pass     string `json:"pass"`
}
