package services

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/requestdata"
)

// IdentityService verifies access tokens minted by the external identity
// provider and attaches the viewer profile to the request context. There is no
// user table here; user ids are opaque references.
type IdentityService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type identityService struct {
	log       *logger.Logger
	jwtSecret string
}

func NewIdentityService(jwtSecret string, baseLog *logger.Logger) IdentityService {
	return &identityService{
		log:       baseLog.With("service", "IdentityService"),
		jwtSecret: jwtSecret,
	}
}

func (s *identityService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return ctx, fmt.Errorf("token missing subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid subject")
	}
	institutionID, err := parseUUIDClaim(claims, "institution_id")
	if err != nil || institutionID == uuid.Nil {
		return ctx, fmt.Errorf("token missing institution")
	}

	rd := &requestdata.RequestData{
		UserID:        userID,
		InstitutionID: institutionID,
	}
	if deptID, err := parseUUIDClaim(claims, "department_id"); err == nil && deptID != uuid.Nil {
		rd.DepartmentID = &deptID
	}
	if raw, ok := claims["level"].(float64); ok {
		level := int(raw)
		rd.Level = &level
	}
	if moderator, ok := claims["moderator"].(bool); ok {
		rd.Moderator = moderator
	}

	return requestdata.WithRequestData(ctx, rd), nil
}

func parseUUIDClaim(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, ok := claims[key].(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("claim %s missing", key)
	}
	return uuid.Parse(raw)
}
