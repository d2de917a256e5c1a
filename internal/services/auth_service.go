package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jobtrail/jobtrail-api/internal/config"
	"github.com/jobtrail/jobtrail-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// defaultColumns are created with every new board, in this display order.
var defaultColumns = []struct {
	Title string
	Color string
}{
	{"Wish List", "orange"},
	{"Applied", "yellow"},
	{"Phone Screen", "green"},
	{"Interview", "blue"},
	{"Offer", "purple"},
}

// dummyHash keeps the bcrypt comparison running on unknown emails so the
// sign-in latency does not reveal whether the email exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// SignUp registers a user and, in the same transaction, creates their board
// with the five default columns already in place.
func (s *AuthService) SignUp(email, password, passwordConfirmation string) (*models.User, error) {
	if email == "" || password == "" || password != passwordConfirmation {
		return nil, ErrInvalidCredentials
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		board := models.Board{
			ID:          uuid.New(),
			OwnerID:     user.ID,
			ColumnOrder: datatypes.JSONSlice[uuid.UUID]{},
		}

		for _, def := range defaultColumns {
			col := models.Column{
				ID:        uuid.New(),
				BoardID:   board.ID,
				OwnerID:   user.ID,
				Title:     def.Title,
				Color:     def.Color,
				CellOrder: datatypes.JSONSlice[uuid.UUID]{},
			}
			if err := tx.Create(&col).Error; err != nil {
				return fmt.Errorf("failed to create default column: %w", err)
			}
			board.ColumnOrder = append(board.ColumnOrder, col.ID)
		}

		if err := tx.Create(&board).Error; err != nil {
			return fmt.Errorf("failed to create board: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// SignIn verifies the credentials and rotates the session: a fresh random
// token replaces whatever was stored, invalidating any previous session. The
// raw token is returned once; only its hash is persisted.
func (s *AuthService) SignIn(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, "", err
	}

	tokenHash := hashToken(token)
	if err := s.db.Model(&user).Update("session_token_hash", tokenHash).Error; err != nil {
		return nil, "", fmt.Errorf("failed to store session token: %w", err)
	}
	user.SessionTokenHash = &tokenHash

	return &user, token, nil
}

// ChangePassword re-hashes after verifying the old password. The session
// token is left alone: changing a password does not sign other devices out.
func (s *AuthService) ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if newPassword == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password_hash", string(hash)).Error
}

// SignOut clears the stored token hash, invalidating the session immediately.
func (s *AuthService) SignOut(userID uuid.UUID) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("session_token_hash", nil).Error
}

// Authenticate resolves a raw bearer token to its user.
func (s *AuthService) Authenticate(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	var user models.User
	if err := s.db.Where("session_token_hash = ?", hashToken(token)).First(&user).Error; err != nil {
		return nil, ErrUnauthenticated
	}
	return &user, nil
}

func newSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
