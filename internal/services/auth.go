package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bifidokk/shopping-list/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const initDataMaxAge = 24 * time.Hour

// AuthService verifies Telegram Mini App init-data and exchanges it for an
// application user plus a short-lived JWT.
type AuthService struct {
	db        *gorm.DB
	botToken  string
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, botToken, jwtSecret string) *AuthService {
	return &AuthService{db: db, botToken: botToken, jwtSecret: []byte(jwtSecret)}
}

// ValidateInitData checks the init-data signature the way Telegram specifies:
// drop the hash field, sort the remaining key=value pairs, join them with
// newlines, and compare an HMAC-SHA256 keyed with
// HMAC-SHA256("WebAppData", botToken). Data older than 24 hours is rejected.
func (s *AuthService) ValidateInitData(initData string) (url.Values, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, ErrInvalidInitData
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, ErrInvalidInitData
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	dataCheckString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(s.botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheckString))
	calculated := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(calculated), []byte(hash)) {
		return nil, ErrInvalidInitData
	}

	if authDate := values.Get("auth_date"); authDate != "" {
		ts, err := strconv.ParseInt(authDate, 10, 64)
		if err != nil {
			return nil, ErrInvalidInitData
		}
		if time.Since(time.Unix(ts, 0)) > initDataMaxAge {
			return nil, ErrExpiredInitData
		}
	}

	return values, nil
}

type initDataUser struct {
	ID           int64   `json:"id"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Username     *string `json:"username"`
	LanguageCode *string `json:"language_code"`
}

// FindOrCreateUser resolves the user field of validated init-data into a
// User row, creating it on first sight and refreshing names, handle and
// locale on every subsequent call.
func (s *AuthService) FindOrCreateUser(values url.Values) (*models.User, error) {
	raw := values.Get("user")
	if raw == "" {
		return nil, ErrInvalidInitData
	}

	var data initDataUser
	if err := json.Unmarshal([]byte(raw), &data); err != nil || data.ID == 0 {
		return nil, ErrInvalidInitData
	}

	user := models.User{
		TelegramID:   data.ID,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Username:     data.Username,
		LanguageCode: data.LanguageCode,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "username", "language_code", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}

	// Re-read to get the row ID when the upsert hit an existing user.
	var saved models.User
	if err := s.db.Where("telegram_id = ?", data.ID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// Authenticate validates raw init-data and returns the verified user.
func (s *AuthService) Authenticate(initData string) (*models.User, error) {
	values, err := s.ValidateInitData(initData)
	if err != nil {
		return nil, err
	}
	return s.FindOrCreateUser(values)
}

func (s *AuthService) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("invalid user_id in token")
	}

	return uint(userIDFloat), nil
}

// UserByID loads a user by internal ID, for JWT-authenticated requests.
func (s *AuthService) UserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
