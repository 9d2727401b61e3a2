package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/JMDCLkr04/Cinema/internal/model"
	"github.com/JMDCLkr04/Cinema/internal/utils"
)

// ErrEmailExists is returned when registering with a correo that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// UserRepo persists usuarios. Passwords are bcrypt-hashed before they
// reach the database.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its generated id.
func (r *UserRepo) Create(ctx context.Context, nombre, correo, password, rol string, cost int) (string, error) {
	correo = strings.ToLower(strings.TrimSpace(correo))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO usuarios (id_usuario, nombre, correo, password_hash, rol) VALUES (?,?,?,?,?)",
		id, nombre, correo, hash, rol)
	if err != nil {
		if isDuplicateKey(err, "") {
			return "", ErrEmailExists
		}
		return "", err
	}
	return id, nil
}

// GetByCorreo fetches a user by normalized correo.
func (r *UserRepo) GetByCorreo(ctx context.Context, correo string) (model.User, error) {
	correo = strings.ToLower(strings.TrimSpace(correo))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id_usuario,nombre,correo,password_hash,rol,created_at FROM usuarios WHERE correo=? LIMIT 1",
		correo).Scan(&u.ID, &u.Nombre, &u.Correo, &u.PasswordHash, &u.Rol, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id_usuario,nombre,correo,password_hash,rol,created_at FROM usuarios WHERE id_usuario=? LIMIT 1",
		id).Scan(&u.ID, &u.Nombre, &u.Correo, &u.PasswordHash, &u.Rol, &u.CreatedAt)
	return u, err
}
