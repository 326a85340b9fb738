// Script to refresh the bundled Node.js release schedule snapshot.
// Run with: go run ./scripts/refresh-schedule [output-file]
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

const scheduleURL = "https://raw.githubusercontent.com/nodejs/Release/main/schedule.json"

func main() {
	output := "src/internal/release/data/schedule.json"
	if len(os.Args) > 1 {
		output = os.Args[1]
	}

	if err := refresh(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func refresh(output string) error {
	fmt.Printf("Fetching %s...\n", scheduleURL)

	resp, err := http.Get(scheduleURL)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read schedule: %w", err)
	}

	// Validate and pretty-print so diffs stay readable
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("schedule is not valid JSON: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return fmt.Errorf("failed to format schedule: %w", err)
	}
	pretty.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(output, pretty.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Wrote %d release lines to %s\n", len(raw), output)
	return nil
}
