// Package ingest reads the source CSV and turns it into validated raw
// records plus a per-row error listing. A bad row never aborts the batch;
// only an unreadable file is fatal.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Jaxic/BookStoreDir-sub002/internal/logger"
	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
	"github.com/Jaxic/BookStoreDir-sub002/pkg/fingerprint"
)

// ErrEmptyFile is fatal to the whole run, unlike the per-row
// ValidationErrors collected in the Result.
var ErrEmptyFile = errors.New("empty file: no header row found")

// Result is the outcome of one ingestion run. Every data row lands in
// exactly one of Records or Errors, both in file order.
type Result struct {
	RunID       string
	Source      string
	Fingerprint string
	Duration    time.Duration

	Records []models.RawBookstoreRecord
	Errors  []models.ValidationError
}

// Pipeline reads a CSV file, validates each row, and aggregates the results.
type Pipeline struct {
	validator *Validator
	log       *logger.Logger
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(log *logger.Logger) *Pipeline {
	return &Pipeline{
		validator: NewValidator(),
		log:       log,
	}
}

// Run ingests the CSV at path. Columns are matched by header name, so the
// column order in the file does not matter. Row numbers in the error listing
// are 1-based with the header as row 0.
func (p *Pipeline) Run(path string) (*Result, error) {
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	result := &Result{
		RunID:       uuid.NewString(),
		Source:      path,
		Fingerprint: fingerprint.Sum(data),
	}

	reader := csv.NewReader(bytes.NewReader(data))
	// Column-count mismatches are reported per row, not as reader errors.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}

		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
	}

	rowNum := 0

	for {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		rowNum++

		if readErr != nil {
			// Malformed row: no column mapping exists, so no data dump.
			result.Errors = append(result.Errors, models.ValidationError{
				Row:     rowNum,
				Message: fmt.Sprintf("malformed row: %v", readErr),
			})

			continue
		}

		if len(row) != len(headers) {
			result.Errors = append(result.Errors, models.ValidationError{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d", len(row), len(headers)),
			})

			continue
		}

		mapped := make(map[string]string, len(headers))
		for i, h := range headers {
			mapped[h] = row[i]
		}

		rec, validateErr := p.validator.Validate(mapped)
		if validateErr != nil {
			result.Errors = append(result.Errors, models.ValidationError{
				Row:     rowNum,
				Data:    mapped,
				Message: validateErr.Error(),
			})

			continue
		}

		result.Records = append(result.Records, rec)
	}

	result.Duration = time.Since(start)

	if p.log != nil {
		p.log.Info("ingestion complete",
			"run_id", result.RunID,
			"source", path,
			"records", len(result.Records),
			"errors", len(result.Errors),
			"duration", result.Duration,
		)
	}

	return result, nil
}
