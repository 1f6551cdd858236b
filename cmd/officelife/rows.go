package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/officelife/modules/hrm/domain/entities/importjob"
)

var rowColumns = []string{"first_name", "last_name", "email"}

// readRows loads import rows from the first sheet of an xlsx workbook. The
// first row names the columns; their order is free.
func readRows(r io.Reader) (rows []importjob.Row, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	if len(cells) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(cells[0]))
	for i, name := range cells[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range rowColumns {
		if _, ok := index[col]; !ok {
			return nil, errors.Errorf("missing column %q", col)
		}
	}

	cell := func(line []string, col string) string {
		i := index[col]
		if i >= len(line) {
			return ""
		}
		return strings.TrimSpace(line[i])
	}
	for _, line := range cells[1:] {
		row := importjob.Row{
			FirstName: cell(line, "first_name"),
			LastName:  cell(line, "last_name"),
			Email:     cell(line, "email"),
		}
		if row == (importjob.Row{}) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
