package services

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/ptopolicy"
	"github.com/iota-uz/officelife/pkg/constants"
)

const (
	calendarSheet = "Calendar"
	summarySheet  = "Summary"
)

// CalendarExporter writes a policy calendar as an xlsx workbook: one row per
// day plus a summary sheet.
type CalendarExporter struct{}

func NewCalendarExporter() *CalendarExporter {
	return &CalendarExporter{}
}

func (e *CalendarExporter) Export(p ptopolicy.Policy, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", calendarSheet); err != nil {
		return errors.Wrap(err, "failed to name calendar sheet")
	}
	if err := f.SetSheetRow(calendarSheet, "A1", &[]any{"day", "weekday", "day_of_year", "is_worked"}); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for i, d := range p.Days {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{d.Date.Format(constants.DateFormat), d.Date.Weekday().String(), d.DayOfYear(), d.IsWorked}
		if err := f.SetSheetRow(calendarSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write %s", d.Date.Format(constants.DateFormat))
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return errors.Wrap(err, "failed to add summary sheet")
	}
	summary := [][]any{
		{"year", p.Year},
		{"total_worked_days", p.TotalWorkedDays},
		{"default_amount_of_allowed_holidays", p.DefaultHolidays},
		{"default_amount_of_sick_days", p.DefaultSickDays},
		{"default_amount_of_pto_days", p.DefaultPTODays},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return errors.Wrap(err, "failed to write summary")
		}
	}
	return errors.Wrap(f.Write(w), "failed to write workbook")
}
