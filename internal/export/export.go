// Package export writes the normalized dataset to the JSON file consumed by
// the page-generation layer.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
)

// Dataset is the exported snapshot. Fingerprint identifies the source CSV
// content so downstream builds can skip unchanged data.
type Dataset struct {
	GeneratedAt time.Time                   `json:"generatedAt"`
	Fingerprint string                      `json:"fingerprint"`
	Count       int                         `json:"count"`
	Stores      []models.ProcessedBookstore `json:"stores"`
}

// WriteDataset saves the stores to outputPath, creating intermediate
// directories as needed.
func WriteDataset(outputPath, sourceFingerprint string, stores []models.ProcessedBookstore, prettyPrint bool) error {
	dataset := Dataset{
		GeneratedAt: time.Now().UTC(),
		Fingerprint: sourceFingerprint,
		Count:       len(stores),
		Stores:      stores,
	}

	var (
		data []byte
		err  error
	)

	if prettyPrint {
		data, err = json.MarshalIndent(dataset, "", "  ")
	} else {
		data, err = json.Marshal(dataset)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	return nil
}
