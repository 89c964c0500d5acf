package stockdash

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatementTimeFormat is the timestamp layout of brokerage statement exports.
const StatementTimeFormat = "02/01/2006 15:04:05"

// ErrEmpty is returned when there is no data to work on.
var ErrEmpty = errors.New("no data")

// Activity is a row of the "Account Activity" sheet of a statement.
type Activity struct {
	Time       time.Time
	Type       string // "Deposit", "Open Position", "Position closed", ...
	Details    string // "AAPL/USD" for positions
	Amount     decimal.Decimal
	Units      decimal.Decimal
	Balance    decimal.NullDecimal // account balance after the activity, not Valid when blank
	AssetType  string
	PositionID string
}

// ClosedPosition is a row of the "Closed Positions" sheet of a statement.
type ClosedPosition struct {
	PositionID string
	Action     string
	OpenTime   time.Time
	CloseTime  time.Time
	Profit     decimal.Decimal // in USD
}

// rowReader yields the rows of a sheet and io.EOF after the last one.
// *csv.Reader is one.
type rowReader interface {
	Read() ([]string, error)
}

// sheetRows reads rows already in memory.
type sheetRows [][]string

func (s *sheetRows) Read() ([]string, error) {
	if len(*s) == 0 {
		return nil, io.EOF
	}
	row := (*s)[0]
	*s = (*s)[1:]
	return row, nil
}

// table reads rows after a header row and gives access to cells by column name.
type table struct {
	r       rowReader
	columns map[string]int
	line    int
	record  []string
	// serial, when set, converts cells that are not StatementTimeFormat
	// timestamps, like spreadsheet date serials.
	serial func(string) (time.Time, error)
}

func newTable(r rowReader, required ...string) (*table, error) {
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header: %w", ErrEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	t := &table{r: r, columns: make(map[string]int), line: 1}
	for i, name := range header {
		t.columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return t, nil
}

func newCSVTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return newTable(cr, required...)
}

// next reads the next non blank record, it returns false at the end of the file.
func (t *table) next() (bool, error) {
	for {
		record, err := t.r.Read()
		if err == io.EOF {
			return false, nil
		}
		t.line++
		if err != nil {
			return false, fmt.Errorf("line %d: %w", t.line, err)
		}
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}
		t.record = record
		return true, nil
	}
}

func (t *table) get(column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(t.record) {
		return ""
	}
	return strings.TrimSpace(t.record[i])
}

func (t *table) timeAt(column string) (time.Time, error) {
	v := t.get(column)
	on, err := time.Parse(StatementTimeFormat, v)
	if err != nil && t.serial != nil {
		if serial, serr := t.serial(v); serr == nil {
			return serial, nil
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("line %d: invalid %s %q: %w", t.line, column, v, err)
	}
	return on, nil
}

// decimalAt reads an optional number, empty cells are 0.
func (t *table) decimalAt(column string) (decimal.Decimal, error) {
	d, err := t.nullDecimalAt(column)
	return d.Decimal, err
}

// nullDecimalAt reads an optional number, empty cells are not Valid.
func (t *table) nullDecimalAt(column string) (decimal.NullDecimal, error) {
	v := strings.ReplaceAll(t.get(column), ",", "")
	if v == "" || v == "-" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("line %d: invalid %s %q: %w", t.line, column, v, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// Sheet names of a brokerage statement workbook.
const (
	ActivitySheet = "Account Activity"
	ClosedSheet   = "Closed Positions"
)

var (
	activityColumns = []string{"Date", "Type", "Balance"}
	closedColumns   = []string{"Close Date", "Profit(USD)"}
)

// DecodeActivities reads the CSV export of the "Account Activity" sheet.
func DecodeActivities(r io.Reader) ([]Activity, error) {
	t, err := newCSVTable(r, activityColumns...)
	if err != nil {
		return nil, fmt.Errorf("account activity: %w", err)
	}
	return readActivities(t)
}

func readActivities(t *table) ([]Activity, error) {
	var acts []Activity
	for {
		ok, err := t.next()
		if err != nil {
			return nil, fmt.Errorf("account activity: %w", err)
		}
		if !ok {
			return acts, nil
		}
		a := Activity{
			Type:       t.get("Type"),
			Details:    t.get("Details"),
			AssetType:  t.get("Asset type"),
			PositionID: t.get("Position ID"),
		}
		if a.Time, err = t.timeAt("Date"); err != nil {
			return nil, fmt.Errorf("account activity: %w", err)
		}
		if a.Amount, err = t.decimalAt("Amount"); err != nil {
			return nil, fmt.Errorf("account activity: %w", err)
		}
		if a.Units, err = t.decimalAt("Units / Contracts"); err != nil {
			return nil, fmt.Errorf("account activity: %w", err)
		}
		if a.Balance, err = t.nullDecimalAt("Balance"); err != nil {
			return nil, fmt.Errorf("account activity: %w", err)
		}
		acts = append(acts, a)
	}
}

// DecodeClosedPositions reads the CSV export of the "Closed Positions" sheet.
func DecodeClosedPositions(r io.Reader) ([]ClosedPosition, error) {
	t, err := newCSVTable(r, closedColumns...)
	if err != nil {
		return nil, fmt.Errorf("closed positions: %w", err)
	}
	return readClosedPositions(t)
}

func readClosedPositions(t *table) ([]ClosedPosition, error) {
	var positions []ClosedPosition
	for {
		ok, err := t.next()
		if err != nil {
			return nil, fmt.Errorf("closed positions: %w", err)
		}
		if !ok {
			return positions, nil
		}
		p := ClosedPosition{PositionID: t.get("Position ID"), Action: t.get("Action")}
		if p.CloseTime, err = t.timeAt("Close Date"); err != nil {
			return nil, fmt.Errorf("closed positions: %w", err)
		}
		if t.get("Open Date") != "" {
			if p.OpenTime, err = t.timeAt("Open Date"); err != nil {
				return nil, fmt.Errorf("closed positions: %w", err)
			}
		}
		if p.Profit, err = t.decimalAt("Profit(USD)"); err != nil {
			return nil, fmt.Errorf("closed positions: %w", err)
		}
		positions = append(positions, p)
	}
}
