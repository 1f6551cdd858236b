package authz

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/pkg/serrors"
)

var testCompany = uuid.MustParse("f6f8b13e-755f-41e0-af1a-f2671e40c15c")

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{})
	require.NoError(t, err)
	return svc
}

func actor(id uint, role Role) Actor {
	return Actor{ID: id, CompanyID: testCompany, Name: "Tester", Role: role}
}

func TestMeetsFloor_Hierarchy(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		role, floor Role
		want        bool
	}{
		{RoleAdministrator, RoleAdministrator, true},
		{RoleAdministrator, RoleHR, true},
		{RoleAdministrator, RoleUser, true},
		{RoleHR, RoleAdministrator, false},
		{RoleHR, RoleHR, true},
		{RoleHR, RoleUser, true},
		{RoleUser, RoleAdministrator, false},
		{RoleUser, RoleHR, false},
		{RoleUser, RoleUser, true},
		{Role(0), RoleUser, false},
	}
	for _, tc := range cases {
		got, err := svc.MeetsFloor(tc.role, tc.floor)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%s vs floor %s", tc.role, tc.floor)
	}
}

func TestAuthorize_MembershipFirst(t *testing.T) {
	svc := newTestService(t)
	outsider := Actor{ID: 7, CompanyID: uuid.New(), Role: RoleAdministrator}

	err := svc.Authorize(context.Background(), Input{Actor: outsider, CompanyID: testCompany}, AtLeast(RoleUser))
	require.ErrorIs(t, err, serrors.ErrForbidden)

	var be *serrors.BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, ReasonNotInCompany, be.TemplateData["reason"])
}

func TestAuthorize_UnknownMembershipFailsClosed(t *testing.T) {
	svc := newTestService(t)

	err := svc.Authorize(context.Background(), Input{Actor: actor(1, RoleAdministrator)}, AtLeast(RoleUser))
	require.ErrorIs(t, err, serrors.ErrForbidden)
}

func TestAuthorize_RoleFloor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Authorize(ctx, Input{Actor: actor(1, RoleHR), CompanyID: testCompany}, AtLeast(RoleHR)))
	err := svc.Authorize(ctx, Input{Actor: actor(2, RoleUser), CompanyID: testCompany}, AtLeast(RoleHR))
	require.ErrorIs(t, err, serrors.ErrForbidden)
}

func TestAuthorize_ManagerBypass(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	req := AtLeast(RoleHR).OrManager()

	in := Input{Actor: actor(2, RoleUser), CompanyID: testCompany, TargetEmployeeID: 9, ManagesTarget: true}
	require.NoError(t, svc.Authorize(ctx, in, req))

	// A manager of the target's manager is not a direct manager.
	in.ManagesTarget = false
	require.ErrorIs(t, svc.Authorize(ctx, in, req), serrors.ErrForbidden)

	// Bypass is only honored when the requirement enables it.
	in.ManagesTarget = true
	require.ErrorIs(t, svc.Authorize(ctx, in, AtLeast(RoleHR)), serrors.ErrForbidden)
}

func TestAuthorize_SelfBypass(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	req := AtLeast(RoleHR).OrSelf()

	require.NoError(t, svc.Authorize(ctx, Input{Actor: actor(4, RoleUser), CompanyID: testCompany, TargetEmployeeID: 4}, req))
	require.ErrorIs(t,
		svc.Authorize(ctx, Input{Actor: actor(4, RoleUser), CompanyID: testCompany, TargetEmployeeID: 5}, req),
		serrors.ErrForbidden,
	)
	require.ErrorIs(t,
		svc.Authorize(ctx, Input{Actor: actor(4, RoleUser), CompanyID: testCompany}, req),
		serrors.ErrForbidden,
	)
}

func TestMembership_IgnoresRole(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Membership(context.Background(), Input{Actor: actor(3, RoleUser), CompanyID: testCompany}))
}

func TestNewService_FilePolicy(t *testing.T) {
	svc, err := NewService(Config{
		ModelPath:  filepath.Join("testdata", "model.conf"),
		PolicyPath: filepath.Join("testdata", "policy.csv"),
	})
	require.NoError(t, err)

	// The fixture policy has no hr -> user grouping.
	ok, err := svc.MeetsFloor(RoleHR, RoleUser)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.MeetsFloor(RoleAdministrator, RoleHR)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.ReloadPolicy(context.Background()))
}

func TestNewService_RejectsHalfConfig(t *testing.T) {
	_, err := NewService(Config{ModelPath: "model.conf"})
	require.Error(t, err)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("HR")
	require.NoError(t, err)
	require.Equal(t, RoleHR, r)

	r, err = ParseRole("100")
	require.NoError(t, err)
	require.Equal(t, RoleAdministrator, r)

	_, err = ParseRole("owner")
	require.Error(t, err)
}
