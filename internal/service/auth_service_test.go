package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/pkg/config"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
)

type stubAdminReader struct {
	admin     *models.Admin
	findErr   error
	lastLogin time.Time
}

func (s *stubAdminReader) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.admin, nil
}

func (s *stubAdminReader) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.admin, nil
}

func (s *stubAdminReader) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	s.lastLogin = ts
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "nexjob-api"}
}

func testAdmin(t *testing.T, role models.AdminRole, active bool) *models.Admin {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Admin{
		ID:           "admin-1",
		Email:        "root@nexjob.tech",
		PasswordHash: string(hash),
		FullName:     "Root Admin",
		Role:         role,
		Active:       active,
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	admins := &stubAdminReader{admin: testAdmin(t, models.RoleSuperAdmin, true)}
	audit := &stubAuditRecorder{}
	svc := NewAuthService(admins, audit, testJWTConfig(), nil)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "root@nexjob.tech",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin-1", resp.User.ID)
	assert.False(t, admins.lastLogin.IsZero())

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionLogin, audit.entries[0].Action)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	admins := &stubAdminReader{admin: testAdmin(t, models.RoleSuperAdmin, true)}
	svc := NewAuthService(admins, nil, testJWTConfig(), nil)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "root@nexjob.tech",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownAccount(t *testing.T) {
	admins := &stubAdminReader{findErr: sql.ErrNoRows}
	svc := NewAuthService(admins, nil, testJWTConfig(), nil)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ghost@nexjob.tech",
		Password: "anything",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	admins := &stubAdminReader{admin: testAdmin(t, models.RoleSuperAdmin, false)}
	svc := NewAuthService(admins, nil, testJWTConfig(), nil)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "root@nexjob.tech",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, appErrors.ErrInactiveAccount)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := NewAuthService(&stubAdminReader{}, nil, testJWTConfig(), nil)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	other := NewAuthService(&stubAdminReader{admin: testAdmin(t, models.RoleAdmin, true)}, nil,
		config.JWTConfig{Secret: "other-secret", Expiration: time.Hour}, nil)
	resp, err := other.Login(context.Background(), &models.LoginRequest{
		Email:    "root@nexjob.tech",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestIsSuperAdminChecksDatabaseState(t *testing.T) {
	claims := &models.JWTClaims{UserID: "admin-1", Role: models.RoleSuperAdmin}

	tests := []struct {
		name   string
		admins *stubAdminReader
		want   bool
	}{
		{"active super admin", &stubAdminReader{admin: testAdmin(t, models.RoleSuperAdmin, true)}, true},
		{"demoted since issue", &stubAdminReader{admin: testAdmin(t, models.RoleEditor, true)}, false},
		{"deactivated since issue", &stubAdminReader{admin: testAdmin(t, models.RoleSuperAdmin, false)}, false},
		{"deleted since issue", &stubAdminReader{findErr: sql.ErrNoRows}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAuthService(tc.admins, nil, testJWTConfig(), nil)
			got, err := svc.IsSuperAdmin(context.Background(), claims)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
