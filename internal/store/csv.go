package store

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// ExportFileName is the default name for exported collections.
const ExportFileName = "RF_LINKS_EXPORT.csv"

// ExportCSV writes the whole collection as CSV: an unquoted header of the
// field names, then one row per record with every field double-quoted and
// inner quotes doubled. Rows are separated by "\n" with no trailing newline.
func (s *Store) ExportCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(types.Fields, ","))
	for _, r := range s.records {
		bw.WriteByte('\n')
		for i, v := range r.Values() {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(v, `"`, `""`))
			bw.WriteByte('"')
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ImportResult reports what ImportCSV did with each data row.
type ImportResult struct {
	Imported   int        `json:"imported"`
	Duplicates int        `json:"duplicates"`
	Malformed  int        `json:"malformed"`
	Errors     []RowError `json:"errors,omitempty"`
}

// RowError describes a skipped import row.
type RowError struct {
	Line int    `json:"line"`
	ID   string `json:"id,omitempty"`
	Err  error  `json:"-"`
}

func (e RowError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.ID, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

const utf8BOM = "\ufeff"

// ImportCSV reads CSV in the export format and appends every record whose
// Link_ID is new to the collection. Existing records are never overwritten.
//
// Columns are matched by header name; unknown columns are ignored and
// missing ones (Loopback_IP, typically) are left empty. A header without
// Link_ID rejects the whole input with ErrMalformedHeader. Rows that do not
// parse, have more fields than the header, or have no Link_ID are skipped
// and reported. The collection is persisted once, and only if something was
// imported.
func (s *Store) ImportCSV(r io.Reader) (ImportResult, error) {
	var res ImportResult

	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return res, fmt.Errorf("%w: input is empty", types.ErrMalformedHeader)
	}
	if err != nil {
		return res, fmt.Errorf("%w: %w", types.ErrMalformedHeader, err)
	}
	columns, err := mapHeader(header)
	if err != nil {
		return res, err
	}

	seen := make(map[string]bool, len(s.records))
	for _, rec := range s.records {
		seen[rec.ID] = true
	}

	var added []types.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return res, fmt.Errorf("read csv: %w", err)
			}
			s.skipRow(&res, RowError{Line: pe.StartLine, Err: fmt.Errorf("%w: %w", types.ErrMalformedRow, pe.Err)})
			continue
		}
		line, _ := cr.FieldPos(0)

		if len(row) > len(header) {
			s.skipRow(&res, RowError{Line: line, Err: fmt.Errorf("%w: %d fields, header has %d",
				types.ErrMalformedRow, len(row), len(header))})
			continue
		}

		var rec types.Record
		for i, v := range row {
			if name := columns[i]; name != "" {
				rec.SetField(name, v)
			}
		}
		rec.ID = strings.TrimSpace(rec.ID)
		if rec.ID == "" {
			s.skipRow(&res, RowError{Line: line, Err: fmt.Errorf("%w: empty %s", types.ErrMalformedRow, types.FieldID)})
			continue
		}
		if seen[rec.ID] {
			res.Duplicates++
			s.logger.Debug("import row skipped: link ID already present", "line", line, "id", rec.ID)
			continue
		}
		seen[rec.ID] = true
		added = append(added, rec)
	}

	if len(added) == 0 {
		return res, nil
	}
	s.records = append(s.records, added...)
	res.Imported = len(added)
	s.logger.Info("imported links", "imported", res.Imported, "duplicates", res.Duplicates, "malformed", res.Malformed)
	return res, s.persist()
}

func (s *Store) skipRow(res *ImportResult, rowErr RowError) {
	res.Malformed++
	res.Errors = append(res.Errors, rowErr)
	s.logger.Warn("import row skipped", "line", rowErr.Line, "err", rowErr.Err)
}

// mapHeader returns, for each header column, the record field it fills or ""
// for columns that are not record fields. The first occurrence of a name
// wins.
func mapHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	claimed := make(map[string]bool, len(types.Fields))
	known := make(map[string]bool, len(types.Fields))
	for _, f := range types.Fields {
		known[f] = true
	}

	for i, h := range header {
		name := strings.Trim(strings.TrimSpace(h), `"`)
		if known[name] && !claimed[name] {
			columns[i] = name
			claimed[name] = true
		}
	}
	if !claimed[types.FieldID] {
		return nil, fmt.Errorf("%w: no %s column", types.ErrMalformedHeader, types.FieldID)
	}
	return columns, nil
}
