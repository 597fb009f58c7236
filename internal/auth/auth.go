package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords don't match")
	ErrEmailTaken         = errors.New("this email address already exists")
	ErrUsernameTaken      = errors.New("this username already exists")
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Credentials is what both registration and login hand back to the caller.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register creates a user account and returns its API token.
func (s *Service) Register(username, email, password, repeatedPassword string) (*Credentials, error) {
	if password != repeatedPassword {
		return nil, ErrPasswordMismatch
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Username: username, Email: email, PasswordHash: string(hash)}
	var token models.AuthToken
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		var err error
		token, err = getOrCreateToken(tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Credentials{Token: token.Key, Username: user.Username, Email: user.Email}, nil
}

// Login authenticates by email and password. The error never reveals which
// part of the credentials was wrong.
func (s *Service) Login(email, password string) (*Credentials, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := getOrCreateToken(s.DB, user.ID)
	if err != nil {
		return nil, err
	}
	return &Credentials{Token: token.Key, Username: user.Username, Email: user.Email}, nil
}

// UserForToken resolves an API key to its owning user.
func (s *Service) UserForToken(key string) (*models.User, error) {
	var token models.AuthToken
	if err := s.DB.Preload("User").Where("key = ?", key).First(&token).Error; err != nil {
		return nil, err
	}
	return &token.User, nil
}

func getOrCreateToken(tx *gorm.DB, userID uint) (models.AuthToken, error) {
	var token models.AuthToken
	err := tx.Where(models.AuthToken{UserID: userID}).
		Attrs(models.AuthToken{Key: newTokenKey()}).
		FirstOrCreate(&token).Error
	return token, err
}

// newTokenKey returns 20 random bytes hex encoded, 40 characters.
func newTokenKey() string {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
