package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Keerti2504/todo-simple/internal/models"
	"github.com/Keerti2504/todo-simple/internal/storage"
)

// dummyPasswordHash is compared against when the username is unknown,
// so a failed login pays for a hash verification either way and the
// response time doesn't reveal whether the user exists.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=2$c2FsdHNhbHRzYWx0c2FsdA$a2tra2tra2tra2tra2tra2tra2tra2tra2tra2tra2s"

type authServiceImpl struct {
	logger        zerolog.Logger
	users         *storage.UserStore
	jwtSigningKey []byte
	jwtTokenTTL   time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	users *storage.UserStore,
	jwtSigningKey []byte,
	jwtTokenTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:        logger,
		users:         users,
		jwtSigningKey: jwtSigningKey,
		jwtTokenTTL:   jwtTokenTTL,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, username, password string) error {
	passwordHash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return err
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	err = s.users.Insert(user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			s.logger.Error().
				Str("username", user.Username).
				Msg("user with this username already exists")
			return ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Str("username", user.Username).
			Msg("failed to insert user")
		return err
	}

	s.logger.Info().
		Str("username", user.Username).
		Msg("registered user")
	return nil
}

func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_, _ = argon2id.ComparePasswordAndHash(password, dummyPasswordHash)
			s.logger.Error().
				Str("username", username).
				Msg("user not found")
			return "", ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("username", username).
			Msg("failed to select user by username")
		return "", err
	}

	match, err := argon2id.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return "", err
	} else if !match {
		s.logger.Error().
			Str("username", username).
			Msg("passwords do not match")
		return "", ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(user.Username)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return "", err
	}

	s.logger.Info().
		Str("username", user.Username).
		Time("expires_at", expiresAt).
		Msg("logged in")
	return token, nil
}

func (s *authServiceImpl) ParseToken(token string) (string, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSigningKey, nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to parse token")
		return "", ErrInvalidToken
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		s.logger.Error().Msg("token carries no subject")
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *authServiceImpl) issueToken(username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.jwtTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.jwtSigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
