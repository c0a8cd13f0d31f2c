package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind separates short-lived access tokens from refresh tokens. Each kind is
// signed with its own secret.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Kind   Kind      `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	// Validate accepts only tokens of the given kind.
	Validate(token string, kind Kind) (Claims, error)
}

type signer struct {
	secret []byte
	ttl    time.Duration
}

type HMACService struct {
	issuer  string
	signers map[Kind]signer
	now     func() time.Time
}

func NewHMACService(issuer, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *HMACService {
	return &HMACService{
		issuer: issuer,
		signers: map[Kind]signer{
			KindAccess:  {secret: []byte(accessSecret), ttl: accessTTL},
			KindRefresh: {secret: []byte(refreshSecret), ttl: refreshTTL},
		},
		now: time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return s.sign(KindAccess, userID, email)
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(KindRefresh, userID, "")
}

func (s *HMACService) Validate(token string, kind Kind) (Claims, error) {
	sg, ok := s.usable(kind)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}

	var c Claims
	_, err := jwtlib.NewParser(opts...).ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return sg.secret, nil
	})
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil:
		return Claims{}, ErrTokenInvalid
	case c.Kind != kind || c.UserID == uuid.Nil:
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

func (s *HMACService) sign(kind Kind, userID uuid.UUID, email string) (string, error) {
	sg, ok := s.usable(kind)
	if !ok {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID: userID,
		Email:  email,
		Kind:   kind,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(sg.ttl)),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(sg.secret)
}

func (s *HMACService) usable(kind Kind) (signer, bool) {
	sg, ok := s.signers[kind]
	if !ok || len(sg.secret) == 0 || sg.ttl <= 0 {
		return signer{}, false
	}
	return sg, true
}
