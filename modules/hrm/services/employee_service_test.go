package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/serrors"
)

func TestAddEmployeeToCompany(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.exec, f.repo)

	e, err := svc.AddEmployeeToCompany(context.Background(), &AddEmployeeRequest{
		Base:            f.base(f.hr),
		FirstName:       "Dwight",
		LastName:        "Schrute",
		Email:           "Dwight@Acme.test",
		PermissionLevel: 300,
	})
	require.NoError(t, err)
	require.NotZero(t, e.ID())
	require.Equal(t, "dwight@acme.test", e.Email())
	require.Equal(t, authz.RoleUser, e.Role())

	company := f.capture.Stream(audit.StreamCompany)
	require.Len(t, company, 1)
	require.Equal(t, audit.EmployeeAdded{EmployeeID: e.ID(), FirstName: "Dwight", LastName: "Schrute"}, company[0].Payload)
	require.Equal(t, f.hr.ID(), company[0].Author.ID)

	own := f.capture.Stream(audit.StreamEmployee)
	require.Len(t, own, 1)
	require.Equal(t, e.ID(), own[0].EmployeeID)
	require.Equal(t, audit.ActionEmployeeCreated, own[0].Action())
}

func TestAddEmployeeToCompany_Validation(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.exec, f.repo)

	_, err := svc.AddEmployeeToCompany(context.Background(), &AddEmployeeRequest{
		Base:            f.base(f.hr),
		Email:           "not-an-email",
		PermissionLevel: 150,
	})
	require.ErrorIs(t, err, serrors.ErrValidation)

	fields := map[string]bool{}
	for _, fe := range serrors.FieldsOf(err) {
		fields[fe.Field] = true
	}
	require.True(t, fields["first_name"])
	require.True(t, fields["last_name"])
	require.True(t, fields["email"])
	require.True(t, fields["permission_level"])
	require.Empty(t, f.capture.Entries())
}

func TestAddEmployeeToCompany_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.exec, f.repo)

	_, err := svc.AddEmployeeToCompany(context.Background(), &AddEmployeeRequest{
		Base:            f.base(f.admin),
		FirstName:       "Uma",
		LastName:        "Again",
		Email:           " UMA@acme.test ",
		PermissionLevel: 300,
	})
	require.ErrorIs(t, err, serrors.ErrAlreadyExists)
	require.Empty(t, f.capture.Entries())
}

func TestAddEmployeeToCompany_NormalUserDenied(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.exec, f.repo)

	_, err := svc.AddEmployeeToCompany(context.Background(), &AddEmployeeRequest{
		Base:            f.base(f.user),
		FirstName:       "Jim",
		LastName:        "Halpert",
		Email:           "jim@acme.test",
		PermissionLevel: 100,
	})
	require.ErrorIs(t, err, serrors.ErrForbidden)
	exists, err := f.repo.ExistsByEmail(withCompany(), "jim@acme.test")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestAddEmployeeToCompany_OutsiderDenied(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.exec, f.repo)

	_, err := svc.AddEmployeeToCompany(context.Background(), &AddEmployeeRequest{
		Base:            f.base(f.outsider),
		FirstName:       "Jim",
		LastName:        "Halpert",
		Email:           "jim@acme.test",
		PermissionLevel: 300,
	})
	require.ErrorIs(t, err, serrors.ErrForbidden)
}

func TestSetTwitterHandle_SelfAndReset(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.exec, f.repo)

	e, err := svc.SetTwitterHandle(context.Background(), &SetTwitterRequest{
		Base:       f.base(f.user),
		EmployeeID: f.user.ID(),
		Twitter:    "@uma",
	})
	require.NoError(t, err)
	require.Equal(t, "uma", e.Twitter())
	require.Equal(t, audit.EmployeeTwitterSet{EmployeeID: f.user.ID(), EmployeeName: "Uma User", Twitter: "uma"},
		f.capture.Stream(audit.StreamCompany)[0].Payload)
	require.Equal(t, audit.TwitterSet{Twitter: "uma"}, f.capture.Stream(audit.StreamEmployee)[0].Payload)

	f.capture.Reset()
	e, err = svc.SetTwitterHandle(context.Background(), &SetTwitterRequest{
		Base:       f.base(f.hr),
		EmployeeID: f.user.ID(),
	})
	require.NoError(t, err)
	require.Empty(t, e.Twitter())
	require.Equal(t, audit.ActionEmployeeTwitterReset, f.capture.Stream(audit.StreamCompany)[0].Action())
	require.Equal(t, audit.ActionTwitterReset, f.capture.Stream(audit.StreamEmployee)[0].Action())
}

func TestSetTwitterHandle_PeerDenied(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.exec, f.repo)

	_, err := svc.SetTwitterHandle(context.Background(), &SetTwitterRequest{
		Base:       f.base(f.peer),
		EmployeeID: f.user.ID(),
		Twitter:    "hijack",
	})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	stored, err := f.repo.GetByID(withCompany(), f.user.ID())
	require.NoError(t, err)
	require.Empty(t, stored.Twitter())
}

func TestSetTwitterHandle_CrossCompanyTargetNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.exec, f.repo)

	_, err := svc.SetTwitterHandle(context.Background(), &SetTwitterRequest{
		Base:       f.base(f.admin),
		EmployeeID: f.outsider.ID(),
		Twitter:    "x",
	})
	require.ErrorIs(t, err, serrors.ErrNotFound)
}
