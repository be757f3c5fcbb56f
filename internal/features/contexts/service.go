package contexts

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	logs_core "extlog/internal/features/logs/core"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 24 * time.Hour

var (
	ErrInvalidKind   = errors.New("kind must be one of popup, content, background")
	ErrInvalidOrigin = errors.New("origin must be an absolute http or https URL")
)

type ContextService struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewContextService(secretKey string, tokenTTL time.Duration) *ContextService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	return &ContextService{
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *ContextService) IssueToken(request *IssueTokenRequestDTO) (*IssueTokenResponseDTO, error) {
	if !request.Kind.IsValid() {
		return nil, ErrInvalidKind
	}

	origin, err := resolveOrigin(request.Kind, request.Origin)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    uuid.New().String(),
		"exp":    expiresAt.Unix(),
		"iat":    issuedAt.Unix(),
		"kind":   string(request.Kind),
		"origin": origin,
	})

	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &IssueTokenResponseDTO{
		Token:     tokenString,
		Kind:      request.Kind,
		Origin:    origin,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *ContextService) ParseToken(token string) (*ExecutionContext, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	idStr, _ := claims["sub"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	kindStr, _ := claims["kind"].(string)
	kind := ContextKind(kindStr)
	if !kind.IsValid() {
		return nil, errors.New("invalid token claims")
	}

	origin, ok := claims["origin"].(string)
	if !ok || origin == "" {
		return nil, errors.New("invalid token claims")
	}

	var issuedAt time.Time
	if iat, ok := claims["iat"].(float64); ok {
		issuedAt = time.Unix(int64(iat), 0).UTC()
	}

	return &ExecutionContext{
		ID:       id,
		Kind:     kind,
		Origin:   origin,
		IssuedAt: issuedAt,
	}, nil
}

// resolveOrigin applies the origin rules of each context kind: content
// scripts name the page they run in, the background always uses the
// sentinel, and the popup may name its own page.
func resolveOrigin(kind ContextKind, origin string) (string, error) {
	switch kind {
	case ContextKindBackground:
		return logs_core.BackgroundOrigin, nil
	case ContextKindContent:
		if !isPageURL(origin) {
			return "", ErrInvalidOrigin
		}
		return origin, nil
	default:
		if origin == "" {
			return logs_core.BackgroundOrigin, nil
		}
		return origin, nil
	}
}

func isPageURL(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
