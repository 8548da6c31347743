// Command augment attaches the JNET classification follow-up question to
// every item of a catalog file, backing the original up first. It is a
// one-shot maintenance tool, not part of the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vinash85/polypLabeler/internal/models"
)

var jnetOptions = []string{"Type1", "Type2A", "Type2B", "Type3", "None", "other"}

func main() {
	path := flag.String("catalog", "questions.json", "path to the catalog file to augment")
	flag.Parse()

	if err := run(*path); err != nil {
		log.Fatalf("augment failed: %v", err)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	backupPath := strings.TrimSuffix(path, ".json") + ".backup.json"
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	var items []models.QuestionItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	for i := range items {
		items[i].Questions = []models.SubQuestion{
			{
				Question: items[i].Question,
				Options:  items[i].Options,
			},
			{
				Question: "what is the JNET Class seen in this image?",
				Options:  jnetOptions,
			},
		}
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	fmt.Printf("Updated %s and created backup at %s\n", path, backupPath)
	return nil
}
