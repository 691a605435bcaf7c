package auth

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var (
	ErrMissingToken     = errors.New("missing auth token")
	ErrInvalidToken     = errors.New("invalid auth token")
	ErrBlacklistedToken = errors.New("token is blacklisted")
)

// Identity результат успешной проверки токена
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// Verifier проверяет токены сессий: чёрный список в Redis, затем подпись JWT
type Verifier struct {
	jwtManager *JWTManager
	redis      *redis.Client
}

func NewVerifier(jwtMgr *JWTManager, rdb *redis.Client) *Verifier {
	return &Verifier{jwtManager: jwtMgr, redis: rdb}
}

func (v *Verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	if v.redis != nil {
		exists, err := v.redis.Exists(ctx, "blacklist:"+token).Result()
		if err != nil || exists > 0 {
			return nil, ErrBlacklistedToken
		}
	}

	claims, err := v.jwtManager.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: userID, Role: claims.Role}, nil
}
