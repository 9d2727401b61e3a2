package model

import "time"

// User mirrors the usuarios table. PasswordHash is a bcrypt digest;
// plaintext passwords are never stored.
type User struct {
	ID           string
	Nombre       string
	Correo       string
	PasswordHash string
	Rol          string // "cliente" | "admin"
	CreatedAt    time.Time
}
