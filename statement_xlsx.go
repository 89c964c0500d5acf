package stockdash

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Statement is a brokerage statement workbook.
type Statement struct {
	Activities []Activity
	Closed     []ClosedPosition
}

// DecodeStatement reads the "Account Activity" and "Closed Positions" sheets
// of a statement workbook (.xlsx).
func DecodeStatement(r io.Reader) (*Statement, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open statement workbook: %w", err)
	}
	defer f.Close()

	var s Statement
	t, err := sheetTable(f, ActivitySheet, activityColumns)
	if err != nil {
		return nil, err
	}
	if s.Activities, err = readActivities(t); err != nil {
		return nil, err
	}
	if t, err = sheetTable(f, ClosedSheet, closedColumns); err != nil {
		return nil, err
	}
	if s.Closed, err = readClosedPositions(t); err != nil {
		return nil, err
	}
	return &s, nil
}

// sheetTable reads the raw cell values of a sheet. Timestamps stored as
// date serials are accepted as well as text.
func sheetTable(f *excelize.File, sheet string, required []string) (*table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sheet, err)
	}
	r := sheetRows(rows)
	t, err := newTable(&r, required...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sheet, err)
	}
	t.serial = func(v string) (time.Time, error) {
		serial, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return time.Time{}, err
		}
		return excelize.ExcelDateToTime(serial, false)
	}
	return t, nil
}
