package seed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"items-api/internal/model"
)

// Loader reads one seed file and returns the item records it contains.
type Loader interface {
	// Load reads a gzipped newline-delimited JSON file of item records.
	Load(ctx context.Context, path string) ([]model.ItemCreate, error)
}

// maxLineSize bounds a single JSON record.
const maxLineSize = 1024 * 1024

// decodeRecords reads gzipped NDJSON from r. Blank lines are skipped and any
// line that is not a JSON object fails the whole file.
func decodeRecords(ctx context.Context, r io.Reader, source string) ([]model.ItemCreate, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	records := []model.ItemCreate{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var record model.ItemCreate
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("%s line %d: invalid record: %w", source, lineNo, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file %s: %w", source, err)
	}

	return records, nil
}
