package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/app/models/dto"
	"github.com/kursroster/backend/internal/app/repositories"
	"github.com/kursroster/backend/internal/pkg/apperrors"
	pkgauth "github.com/kursroster/backend/internal/pkg/auth"
	"github.com/kursroster/backend/internal/pkg/logger"
)

// AuthService defines the interface for login operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	store          repositories.RosterStore
	jwtService     *pkgauth.JWTService
	adminPassword  string
	coursePassword string
}

// NewAuthService creates a new auth service instance
func NewAuthService(store repositories.RosterStore, jwtService *pkgauth.JWTService, adminPassword, coursePassword string) AuthService {
	return &authServiceImpl{
		store:          store,
		jwtService:     jwtService,
		adminPassword:  adminPassword,
		coursePassword: coursePassword,
	}
}

// Login authenticates an admin by password or a course leader by course
// selection. A leader's course must already exist in the derived catalog
// unless the roster is still empty (first-run bootstrap). The course password
// is only checked when one was supplied, matching the relaxed kiosk-style
// login the roster has always had.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	switch models.Role(req.Role) {
	case models.RoleAdmin:
		if !pkgauth.CheckPassword(s.adminPassword, req.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return s.issueToken(models.Identity{Role: models.RoleAdmin})

	case models.RoleCourseLeader:
		course := strings.TrimSpace(req.Course)
		if course == "" {
			return nil, apperrors.NewValidationError("course", "course selection is required")
		}

		if req.Password != "" && !pkgauth.CheckPassword(s.coursePassword, req.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}

		students, err := s.store.ReadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("error reading roster: %w", err)
		}
		catalog := DeriveCatalog(students)
		if len(catalog) > 0 && !containsCourse(catalog, course) {
			return nil, apperrors.ErrCourseNotFound
		}

		return s.issueToken(models.Identity{Role: models.RoleCourseLeader, Course: course})

	default:
		return nil, apperrors.NewValidationError("role", "must be admin or course")
	}
}

// issueToken signs a session token for the identity.
func (s *authServiceImpl) issueToken(identity models.Identity) (*dto.LoginResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(identity)
	if err != nil {
		return nil, fmt.Errorf("error issuing session token: %w", err)
	}

	logger.Info().Str("role", string(identity.Role)).Str("course", identity.Course).Msg("Login succeeded")
	return &dto.LoginResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		Role:   string(identity.Role),
		Course: identity.Course,
	}, nil
}

func containsCourse(catalog []string, course string) bool {
	for _, c := range catalog {
		if c == course {
			return true
		}
	}
	return false
}
