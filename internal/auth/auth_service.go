package auth

import (
	"context"
	"errors"

	autherrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/auth/errors"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee"
	employeeerrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// FederationVerifier proves possession of an externally issued
// identity token and yields the verified email claim. Implemented by
// the oidc subpackage; out of process, so failures surface as
// ErrUpstreamVerification.
type FederationVerifier interface {
	VerifyEmail(ctx context.Context, rawToken string) (string, error)
}

type Service interface {
	// Login verifies a direct employee credential by login email.
	Login(ctx context.Context, email, password string) (AuthResponse, error)

	// AdminLogin verifies the separate superadmin identity by office
	// email. Role is fixed to Superadmin regardless of the record.
	AdminLogin(ctx context.Context, username, password string) (AuthResponse, error)

	// FederatedLogin verifies an external identity token, then resolves
	// the employee by the verified email. No password comparison: the
	// federation provider already proved possession.
	FederatedLogin(ctx context.Context, rawToken string) (AuthResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	verifier     FederationVerifier
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, verifier FederationVerifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, verifier: verifier, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	emp, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return AuthResponse{}, err
	}

	// Status gate comes before the credential check so an inactive
	// account always fails with AccountInactive, even when the
	// password is correct.
	if !employee.IsActive(emp.Status) {
		s.logger.Warn("login blocked for inactive account", zap.String("employee_id", emp.ID.String()))
		return AuthResponse{}, autherrors.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidPassword
	}

	return s.issueFor(emp)
}

func (s *service) AdminLogin(ctx context.Context, username, password string) (AuthResponse, error) {
	sa, err := s.repo.FindSuperadminByOfficeEmail(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrInvalidAdminCredentials
		}
		return AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(sa.Password), []byte(password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidAdminCredentials
	}

	token, err := IssueSessionToken(sa.ID.String(), employee.RoleSuperadmin, employee.StatusActive, "", sa.FullName)
	if err != nil {
		s.logger.Error("admin token generation failed", zap.Error(err))
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("superadmin login success", zap.String("superadmin_id", sa.ID.String()))
	return AuthResponse{
		Token: token,
		User: UserSummary{
			ID:   sa.ID.String(),
			Name: sa.FullName,
			Role: employee.RoleSuperadmin,
		},
	}, nil
}

func (s *service) FederatedLogin(ctx context.Context, rawToken string) (AuthResponse, error) {
	email, err := s.verifier.VerifyEmail(ctx, rawToken)
	if err != nil {
		s.logger.Error("federated token verification failed", zap.Error(err))
		return AuthResponse{}, autherrors.ErrUpstreamVerification
	}

	emp, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return AuthResponse{}, err
	}

	if !employee.IsActive(emp.Status) {
		s.logger.Warn("federated login blocked for inactive account", zap.String("employee_id", emp.ID.String()))
		return AuthResponse{}, autherrors.ErrAccountInactive
	}

	return s.issueFor(emp)
}

func (s *service) issueFor(emp *employee.Employee) (AuthResponse, error) {
	token, err := IssueSessionToken(emp.ID.String(), emp.Role, emp.Status, emp.EmpCode, emp.FullName)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("employee_id", emp.ID.String()),
		zap.String("role", emp.Role),
	)

	return AuthResponse{
		Token: token,
		User: UserSummary{
			ID:      emp.ID.String(),
			EmpCode: emp.EmpCode,
			Name:    emp.FullName,
			Email:   emp.Email,
			Role:    emp.Role,
			Status:  emp.Status,
		},
	}, nil
}
