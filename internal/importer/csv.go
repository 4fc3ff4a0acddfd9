package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/milinsoft/bankapp/internal/model"
	"github.com/milinsoft/bankapp/internal/money"
)

var (
	// ErrInvalidHeader reports a header row that is not date,description,amount.
	ErrInvalidHeader = errors.New("incorrect header")
	// ErrNoData reports a file with a valid header but no data rows.
	ErrNoData = errors.New("no data to import")
	// ErrMalformedRow reports a data row without exactly three fields.
	ErrMalformedRow = errors.New("incorrect number of fields")
	// ErrEmptyDescription reports a row with an empty description field.
	ErrEmptyDescription = errors.New("missing transaction description")
)

// expectedHeader is the required first row, order-sensitive, compared
// case-insensitively after trimming.
var expectedHeader = []string{"date", "description", "amount"}

// CSVParser parses comma-separated transaction files.
type CSVParser struct {
	dateLayout string
	rounding   money.RoundingMode
}

// NewCSVParser creates a CSVParser with the given date layout and rounding.
func NewCSVParser(dateLayout string, rounding money.RoundingMode) *CSVParser {
	return &CSVParser{dateLayout: dateLayout, rounding: rounding}
}

// Ext returns the file extension this parser handles.
func (p *CSVParser) Ext() string { return "csv" }

// Parse reads the header and data rows, validating each row in file order.
// The first invalid row aborts parsing with its 1-based position wrapped
// into the error.
func (p *CSVParser) Parse(r io.Reader, accountID int64) ([]model.Draft, error) {
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = -1 // field counts are checked per row

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: expected %s", ErrInvalidHeader, strings.Join(expectedHeader, ","))
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var drafts []model.Draft
	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row number %d: %w", rowNum, err)
		}
		draft, err := p.parseRow(row, accountID)
		if err != nil {
			return nil, fmt.Errorf("row number %d: %w", rowNum, err)
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) == 0 {
		return nil, ErrNoData
	}
	return drafts, nil
}

func validateHeader(header []string) error {
	ok := len(header) == len(expectedHeader)
	if ok {
		for i, col := range header {
			if !strings.EqualFold(strings.TrimSpace(col), expectedHeader[i]) {
				ok = false
				break
			}
		}
	}
	if !ok {
		return fmt.Errorf("%w: expected %s", ErrInvalidHeader, strings.Join(expectedHeader, ","))
	}
	return nil
}

func (p *CSVParser) parseRow(row []string, accountID int64) (model.Draft, error) {
	if len(row) != len(expectedHeader) {
		return model.Draft{}, fmt.Errorf("%w: expected %d, found %d", ErrMalformedRow, len(expectedHeader), len(row))
	}
	dateStr, description, amountStr := row[0], row[1], row[2]

	if description == "" {
		return model.Draft{}, ErrEmptyDescription
	}
	date, err := money.ParseDate(dateStr, p.dateLayout)
	if err != nil {
		return model.Draft{}, err
	}
	amount, err := money.ParseAmount(amountStr, p.rounding)
	if err != nil {
		return model.Draft{}, err
	}

	return model.Draft{
		Date:        date,
		Description: description,
		Amount:      amount,
		AccountID:   accountID,
	}, nil
}

// stripBOM drops a leading UTF-8 byte-order mark if present.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return br
}
