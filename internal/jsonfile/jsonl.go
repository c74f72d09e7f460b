package jsonfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// header is the first line of a JSONL collection file. It keeps an empty
// collection distinguishable from a file that was never written.
type header struct {
	Key     string `json:"key"`
	Version int    `json:"version"`
}

const formatVersion = 1

// encodeLines writes the header line then one record per line.
func encodeLines(w *bufio.Writer, records []types.Record) error {
	hdr, err := json.Marshal(header{Key: types.StorageKey, Version: formatVersion})
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}
	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", rec.ID, err)
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return nil
}

// decodeLines parses a JSONL collection. The header line must be valid;
// record lines that fail to parse are skipped so that one damaged line does
// not cost the whole collection.
func decodeLines(path string, data []byte) ([]types.Record, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	records := []types.Record{}
	sawHeader := false
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !sawHeader {
			var h header
			if err := json.Unmarshal(line, &h); err != nil || h.Key != types.StorageKey {
				return nil, fmt.Errorf("%w: %s: missing %s header line", types.ErrCorruptState, path, types.StorageKey)
			}
			sawHeader = true
			continue
		}
		var rec types.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning %s: %w", types.ErrCorruptState, path, err)
	}
	return records, nil
}
