// Command seedgen writes a gzipped NDJSON file of sample items that the API
// imports on startup when SEED_FILES points at it.
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"items-api/internal/config"
	"items-api/internal/model"
)

func main() {
	out := flag.String("out", "data/seeds/items.ndjson.gz", "output file")
	count := flag.Int("count", 25, "number of items to generate")
	flag.Parse()

	logger := config.NewLogger(config.LoggerConfig{Level: "info", Format: "console"})

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create directory")
	}

	if err := createSeedFile(*out, sampleItems(*count)); err != nil {
		logger.Fatal().Err(err).Str("file", *out).Msg("failed to create seed file")
	}

	logger.Info().Str("file", *out).Int("items", *count).Msg("sample seed file created")
}

func sampleItems(n int) []model.ItemCreate {
	kinds := []string{"Widget", "Gadget", "Sprocket", "Gizmo", "Doohickey"}

	items := make([]model.ItemCreate, 0, n)
	for i := 0; i < n; i++ {
		kind := kinds[i%len(kinds)]
		item := model.ItemCreate{Name: fmt.Sprintf("%s %d", kind, i+1)}

		// Leave some optional fields unset so both shapes are exercised
		if i%3 != 0 {
			desc := fmt.Sprintf("A sample %s", kind)
			item.Description = &desc
		}
		if i%4 != 0 {
			price := float64(100*(i+1)+99) / 100
			item.Price = &price
		}

		items = append(items, item)
	}
	return items
}

func createSeedFile(filePath string, items []model.ItemCreate) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)

	encoder := json.NewEncoder(gzipWriter)
	for _, item := range items {
		if err := encoder.Encode(item); err != nil {
			return fmt.Errorf("failed to write item: %w", err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}
	return file.Close()
}
