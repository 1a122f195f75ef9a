package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// now stamps timestamps in the same shape the rest of the toolchain uses
// for record fields (RFC 3339, UTC, millisecond precision).
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// writeDoc marshals v as an indented JSON document and writes it whole.
// Write failures propagate: a record the caller believes persisted must
// actually be on disk.
func writeDoc(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readDoc reads and parses a single JSON document into v. A missing or
// unparsable file reports false: absent, never an error. Individual
// record corruption must not take down reads of everything else.
func readDoc(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}
