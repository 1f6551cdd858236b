package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/ptopolicy"
	"github.com/iota-uz/officelife/modules/company/infrastructure/persistence"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/serrors"
)

func newPolicyRequest(f *fixture, year int) *CreatePTOPolicyRequest {
	return &CreatePTOPolicyRequest{
		Base:            f.base(f.hr),
		Year:            year,
		DefaultHolidays: intp(30),
		DefaultSickDays: intp(3),
		DefaultPTODays:  intp(5),
	}
}

func TestPTOPolicyService_CreateMaterializesCalendar(t *testing.T) {
	f := newFixture(t)
	svc := NewPTOPolicyService(f.exec, persistence.NewInMemoryPTOPolicyRepository())

	p, err := svc.CreateCompanyPTOPolicy(acmeCtx(), newPolicyRequest(f, 2018))
	require.NoError(t, err)
	require.Equal(t, acme, p.CompanyID)
	require.Len(t, p.Days, 365)
	require.Equal(t, 261, p.TotalWorkedDays)
	require.Equal(t, 30, p.DefaultHolidays)

	entries := f.capture.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, audit.StreamCompany, entries[0].Stream)
	require.Equal(t, audit.PTOPolicyCreated{PolicyID: p.ID, Year: 2018}, entries[0].Payload)
	require.Equal(t, f.hr.ID(), entries[0].Author.ID)
}

func TestPTOPolicyService_CreateLeapYear(t *testing.T) {
	f := newFixture(t)
	svc := NewPTOPolicyService(f.exec, persistence.NewInMemoryPTOPolicyRepository())

	p, err := svc.CreateCompanyPTOPolicy(acmeCtx(), newPolicyRequest(f, 2020))
	require.NoError(t, err)
	require.Len(t, p.Days, 366)
	require.Equal(t, 262, p.TotalWorkedDays)
}

func TestPTOPolicyService_CreateOncePerYear(t *testing.T) {
	f := newFixture(t)
	svc := NewPTOPolicyService(f.exec, persistence.NewInMemoryPTOPolicyRepository())

	_, err := svc.CreateCompanyPTOPolicy(acmeCtx(), newPolicyRequest(f, 2018))
	require.NoError(t, err)
	f.capture.Reset()

	_, err = svc.CreateCompanyPTOPolicy(acmeCtx(), newPolicyRequest(f, 2018))
	require.ErrorIs(t, err, serrors.ErrAlreadyExists)
	require.Empty(t, f.capture.Entries())
}

func TestPTOPolicyService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewPTOPolicyService(f.exec, persistence.NewInMemoryPTOPolicyRepository())

	_, err := svc.CreateCompanyPTOPolicy(acmeCtx(), &CreatePTOPolicyRequest{Base: f.base(f.hr), Year: 1800})
	require.ErrorIs(t, err, serrors.ErrValidation)
	fields := map[string]bool{}
	for _, fe := range serrors.FieldsOf(err) {
		fields[fe.Field] = true
	}
	require.True(t, fields["year"])
	require.True(t, fields["default_amount_of_allowed_holidays"])
	require.True(t, fields["default_amount_of_sick_days"])
	require.True(t, fields["default_amount_of_pto_days"])
}

func TestPTOPolicyService_CreateZeroAmountsAllowed(t *testing.T) {
	f := newFixture(t)
	svc := NewPTOPolicyService(f.exec, persistence.NewInMemoryPTOPolicyRepository())

	req := newPolicyRequest(f, 2019)
	req.DefaultPTODays = intp(0)
	p, err := svc.CreateCompanyPTOPolicy(acmeCtx(), req)
	require.NoError(t, err)
	require.Zero(t, p.DefaultPTODays)
}

func TestPTOPolicyService_CreateRequiresHR(t *testing.T) {
	f := newFixture(t)
	svc := NewPTOPolicyService(f.exec, persistence.NewInMemoryPTOPolicyRepository())

	req := newPolicyRequest(f, 2018)
	req.Base = f.base(f.peer)
	_, err := svc.CreateCompanyPTOPolicy(acmeCtx(), req)
	require.ErrorIs(t, err, serrors.ErrForbidden)

	req.Base = f.base(f.stranger)
	_, err = svc.CreateCompanyPTOPolicy(acmeCtx(), req)
	require.ErrorIs(t, err, serrors.ErrForbidden)
	require.Empty(t, f.capture.Entries())
}

func TestPTOPolicyService_ToggleCalendarDay(t *testing.T) {
	f := newFixture(t)
	repo := persistence.NewInMemoryPTOPolicyRepository()
	svc := NewPTOPolicyService(f.exec, repo)

	p, err := svc.CreateCompanyPTOPolicy(acmeCtx(), newPolicyRequest(f, 2018))
	require.NoError(t, err)
	f.capture.Reset()

	saturday := time.Date(2018, 1, 6, 0, 0, 0, 0, time.UTC)
	toggled, err := svc.ToggleCalendarDay(acmeCtx(), &ToggleCalendarDayRequest{
		Base:     f.base(f.hr),
		PolicyID: p.ID,
		Day:      saturday,
	})
	require.NoError(t, err)
	require.Equal(t, 262, toggled.TotalWorkedDays)

	stored, err := svc.GetByID(acmeCtx(), p.ID)
	require.NoError(t, err)
	require.Equal(t, 262, stored.TotalWorkedDays)
	require.True(t, stored.Days[5].IsWorked)

	entries := f.capture.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, audit.PTOPolicyDayToggled{PolicyID: p.ID, Day: "2018-01-06"}, entries[0].Payload)
}

func TestPTOPolicyService_ToggleOtherCompanyPolicy(t *testing.T) {
	f := newFixture(t)
	repo := persistence.NewInMemoryPTOPolicyRepository()
	svc := NewPTOPolicyService(f.exec, repo)

	foreign, err := repo.Create(globexCtx(), ptopolicy.New(globex, 2018, 30, 3, 5, f.clock.Now()))
	require.NoError(t, err)

	_, err = svc.ToggleCalendarDay(acmeCtx(), &ToggleCalendarDayRequest{
		Base:     f.base(f.hr),
		PolicyID: foreign.ID,
		Day:      time.Date(2018, 1, 6, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, serrors.ErrNotFound)
	require.Empty(t, f.capture.Entries())
}

func TestCalendarExporter_Export(t *testing.T) {
	f := newFixture(t)
	svc := NewPTOPolicyService(f.exec, persistence.NewInMemoryPTOPolicyRepository())
	p, err := svc.CreateCompanyPTOPolicy(acmeCtx(), newPolicyRequest(f, 2018))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewCalendarExporter().Export(p, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	rows, err := wb.GetRows("Calendar")
	require.NoError(t, err)
	require.Len(t, rows, 366)
	require.Equal(t, []string{"day", "weekday", "day_of_year", "is_worked"}, rows[0])
	require.Equal(t, []string{"2018-01-01", "Monday", "1", "TRUE"}, rows[1])
	require.Equal(t, []string{"2018-01-06", "Saturday", "6", "FALSE"}, rows[6])

	summary, err := wb.GetRows("Summary")
	require.NoError(t, err)
	require.Equal(t, []string{"total_worked_days", "261"}, summary[1])
}
