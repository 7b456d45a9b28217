package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	CreateUser(user models.User, password string) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// scanUser is a helper to scan a user from a row or rows object.
func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	var avatar, cover, address, position, bio, specializations sql.NullString

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &avatar, &cover,
		&address, &position, &bio, &specializations,
		&user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return user, err
	}

	user.Avatar = avatar.String
	user.Cover = cover.String
	user.Address = address.String
	user.Position = position.String
	user.Bio = bio.String
	if specializations.Valid && specializations.String != "" {
		if err := json.Unmarshal([]byte(specializations.String), &user.Specializations); err != nil {
			return user, fmt.Errorf("failed to decode specializations for user %s: %w", user.ID, err)
		}
	}
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, avatar, cover, address, position, bio,
		       specializations_json, password_hash, created_at
		FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user with ID %s not found", id)
		}
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// getUserByEmail retrieves a single user by email, including the password hash.
func (s *UserService) getUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, avatar, cover, address, position, bio,
		       specializations_json, password_hash, created_at
		FROM users WHERE email = ?`, email)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user with email %s not found", email)
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a new user, hashing their password.
func (s *UserService) CreateUser(user models.User, password string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user.ID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	user.CreatedAt = time.Now().UTC()

	specializations, err := json.Marshal(user.Specializations)
	if err != nil {
		return models.User{}, err
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO users(id, name, email, avatar, cover, address, position, bio, specializations_json, password_hash, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		user.ID, user.Name, user.Email, user.Avatar, user.Cover,
		user.Address, user.Position, user.Bio, string(specializations),
		user.PasswordHash, user.CreatedAt.Format(sqliteTimeFormat),
	)
	if err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.getUserByEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("authentication failed: user not found")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return models.User{}, fmt.Errorf("authentication failed: invalid password")
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
