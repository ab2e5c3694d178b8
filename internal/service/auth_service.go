package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/pkg/config"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
)

// AdminReader is the persistence surface the auth service needs.
type AdminReader interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
}

// AuthService issues and validates admin tokens.
type AuthService struct {
	admins AdminReader
	audit  AuditRecorder
	cfg    config.JWTConfig
	logger *zap.Logger
}

// NewAuthService wires the auth service.
func NewAuthService(admins AdminReader, audit AuditRecorder, cfg config.JWTConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{admins: admins, audit: audit, cfg: cfg, logger: logger}
}

// Login verifies credentials and issues a signed access token. Credential
// failures are indistinguishable from unknown accounts.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "lookup admin")
	}

	if !admin.Active {
		return nil, appErrors.ErrInactiveAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	token, err := s.signToken(admin, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign token")
	}

	if err := s.admins.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		s.logger.Warn("update last login failed", zap.String("admin_id", admin.ID), zap.Error(err))
	}

	s.recordLogin(ctx, admin, req.IP, req.UserAgent)

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.cfg.Expiration.Seconds()),
		IssuedAt:    now,
		User: models.AdminInfo{
			ID:       admin.ID,
			Email:    admin.Email,
			FullName: admin.FullName,
			Role:     admin.Role,
		},
	}, nil
}

func (s *AuthService) signToken(admin *models.Admin, now time.Time) (string, error) {
	claims := &models.JWTClaims{
		UserID:   admin.ID,
		Email:    admin.Email,
		FullName: admin.FullName,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(token string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

// IsSuperAdmin re-checks the role against the database rather than trusting
// the token alone, so a demoted or deactivated admin loses write access the
// moment the row changes.
func (s *AuthService) IsSuperAdmin(ctx context.Context, claims *models.JWTClaims) (bool, error) {
	if claims == nil || claims.UserID == "" {
		return false, nil
	}

	admin, err := s.admins.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return admin.Active && admin.Role == models.RoleSuperAdmin, nil
}

func (s *AuthService) recordLogin(ctx context.Context, admin *models.Admin, ip, userAgent string) {
	if s.audit == nil {
		return
	}
	entry := &models.AuditLog{
		UserID:    &admin.ID,
		Action:    models.AuditActionLogin,
		Resource:  "admins",
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("audit write failed", zap.Error(err))
	}
}
