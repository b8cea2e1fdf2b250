package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/auth/errors"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee"
	employeeerrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee/errors"
)

type fakeEmployeeRepo struct {
	byEmail map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	for _, emp := range f.byEmail {
		if emp.ID.String() == id {
			return emp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindByEmail(_ context.Context, email string) (*employee.Employee, error) {
	if emp, ok := f.byEmail[email]; ok {
		return emp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindByCode(_ context.Context, code string) (*employee.Employee, error) {
	for _, emp := range f.byEmail {
		if emp.EmpCode == code {
			return emp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAuthRepo struct {
	superadmins map[string]*Superadmin
}

func (f *fakeAuthRepo) FindSuperadminByOfficeEmail(_ context.Context, officeEmail string) (*Superadmin, error) {
	if sa, ok := f.superadmins[officeEmail]; ok {
		return sa, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeVerifier struct {
	email string
	err   error
}

func (f *fakeVerifier) VerifyEmail(_ context.Context, _ string) (string, error) {
	return f.email, f.err
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func activeEmployee(t *testing.T, email, password string) *employee.Employee {
	return &employee.Employee{
		ID:       uuid.New(),
		EmpCode:  "EMP-042",
		FullName: "Arun Kumar",
		Email:    email,
		Password: hash(t, password),
		Role:     employee.RoleEmployee,
		Status:   employee.StatusActive,
	}
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	emp := activeEmployee(t, "arun@corp.example", "s3cret")
	empRepo := &fakeEmployeeRepo{byEmail: map[string]*employee.Employee{emp.Email: emp}}
	svc := NewService(&fakeAuthRepo{}, empRepo, &fakeVerifier{})
	ctx := context.Background()

	resp, err := svc.Login(ctx, emp.Email, "s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, emp.ID.String(), resp.User.ID)
	assert.Equal(t, employee.RoleEmployee, resp.User.Role)

	claims, err := ParseSessionToken(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, emp.ID.String(), claims.Subject)
	assert.Equal(t, emp.EmpCode, claims.EmpCode)

	_, err = svc.Login(ctx, "nobody@corp.example", "s3cret")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)

	_, err = svc.Login(ctx, emp.Email, "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidPassword)
}

// An inactive account must fail with AccountInactive even when the
// password is correct, so status always wins over the credential.
func TestService_Login_InactiveBeatsCredential(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	emp := activeEmployee(t, "arun@corp.example", "s3cret")
	emp.Status = employee.StatusInactive
	empRepo := &fakeEmployeeRepo{byEmail: map[string]*employee.Employee{emp.Email: emp}}
	svc := NewService(&fakeAuthRepo{}, empRepo, &fakeVerifier{})

	_, err := svc.Login(context.Background(), emp.Email, "s3cret")
	assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
}

// Status comparison tolerates stored casing and padding.
func TestService_Login_StatusNormalization(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	emp := activeEmployee(t, "arun@corp.example", "s3cret")
	emp.Status = "  ACTIVE "
	empRepo := &fakeEmployeeRepo{byEmail: map[string]*employee.Employee{emp.Email: emp}}
	svc := NewService(&fakeAuthRepo{}, empRepo, &fakeVerifier{})

	_, err := svc.Login(context.Background(), emp.Email, "s3cret")
	assert.NoError(t, err)
}

func TestService_AdminLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	sa := &Superadmin{
		ID:          uuid.New(),
		FullName:    "Root Admin",
		OfficeEmail: "root@corp.example",
		Password:    hash(t, "adm1n"),
	}
	repo := &fakeAuthRepo{superadmins: map[string]*Superadmin{sa.OfficeEmail: sa}}
	svc := NewService(repo, &fakeEmployeeRepo{}, &fakeVerifier{})
	ctx := context.Background()

	resp, err := svc.AdminLogin(ctx, sa.OfficeEmail, "adm1n")
	assert.NoError(t, err)
	assert.Equal(t, employee.RoleSuperadmin, resp.User.Role)

	claims, err := ParseSessionToken(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, employee.RoleSuperadmin, claims.Role)

	// unknown account and bad password are indistinguishable
	_, err = svc.AdminLogin(ctx, "ghost@corp.example", "adm1n")
	assert.ErrorIs(t, err, autherrors.ErrInvalidAdminCredentials)

	_, err = svc.AdminLogin(ctx, sa.OfficeEmail, "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidAdminCredentials)
}

func TestService_FederatedLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	emp := activeEmployee(t, "arun@corp.example", "unused")
	empRepo := &fakeEmployeeRepo{byEmail: map[string]*employee.Employee{emp.Email: emp}}
	ctx := context.Background()

	svc := NewService(&fakeAuthRepo{}, empRepo, &fakeVerifier{email: emp.Email})
	resp, err := svc.FederatedLogin(ctx, "upstream-token")
	assert.NoError(t, err)
	assert.Equal(t, emp.ID.String(), resp.User.ID)

	svc = NewService(&fakeAuthRepo{}, empRepo, &fakeVerifier{err: errors.New("bad signature")})
	_, err = svc.FederatedLogin(ctx, "upstream-token")
	assert.ErrorIs(t, err, autherrors.ErrUpstreamVerification)

	svc = NewService(&fakeAuthRepo{}, empRepo, &fakeVerifier{email: "stranger@corp.example"})
	_, err = svc.FederatedLogin(ctx, "upstream-token")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

// The status gate applies to the federated path identically.
func TestService_FederatedLogin_InactiveBlocked(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	emp := activeEmployee(t, "arun@corp.example", "unused")
	emp.Status = employee.StatusOnLeave
	empRepo := &fakeEmployeeRepo{byEmail: map[string]*employee.Employee{emp.Email: emp}}
	svc := NewService(&fakeAuthRepo{}, empRepo, &fakeVerifier{email: emp.Email})

	_, err := svc.FederatedLogin(context.Background(), "upstream-token")
	assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
}
