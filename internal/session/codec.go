package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

// ErrInvalidUser возвращается, если сохранённую запись пользователя нельзя разобрать или проверить.
var ErrInvalidUser = errors.New("session: invalid user record")

type userClaims struct {
	Name string     `json:"name"`
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserCodec подписывает запись пользователя, чтобы браузер не мог подменить роль.
type UserCodec struct {
	secretKey []byte
}

// NewUserCodec создаёт кодек с указанным секретом. Пустой секрет заменяется случайным.
func NewUserCodec(secret string) *UserCodec {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("laundry-dashboard-secret")
		}
	}
	return &UserCodec{secretKey: key}
}

// Encode превращает пользователя в подписанную строку со сроком жизни ttl.
func (c *UserCodec) Encode(u model.UserSummary, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := userClaims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(u.ID, 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign user record: %w", err)
	}
	return signed, nil
}

// Decode проверяет подпись и срок жизни и возвращает пользователя.
func (c *UserCodec) Decode(value string) (*model.UserSummary, error) {
	claims := &userClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (any, error) {
		return c.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidUser, claims.Subject)
	}

	return &model.UserSummary{
		ID:   id,
		Name: claims.Name,
		Role: claims.Role,
	}, nil
}
