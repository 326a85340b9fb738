package release

import (
	_ "embed"
)

// Snapshot of the upstream schedule, bundled so the EOL table keeps
// working with no network and no cache. Refresh with:
// go run ./scripts/refresh-schedule
//
//go:embed data/schedule.json
var embeddedSchedule []byte

// EmbeddedSchedule decodes the schedule snapshot built into the binary.
func EmbeddedSchedule() (*Schedule, error) {
	return DecodeSchedule(embeddedSchedule)
}
