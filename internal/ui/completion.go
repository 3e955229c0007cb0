package ui

import (
	"fmt"

	"github.com/bamsammich/ppcp/internal/stats"
)

// CompletionSummary builds the final summary line from a snapshot.
// Format: copied 48,917 files (2.1 GiB) in 3m 17s 641 MB/s
func CompletionSummary(snap stats.Snapshot) string {
	line := fmt.Sprintf("copied %s files (%s) in %s %s",
		FormatCount(snap.FilesDone),
		FormatBytes(snap.BytesDone),
		FormatDuration(snap.Elapsed),
		FormatRate(float64(snap.AvgRate())),
	)
	if snap.FilesFailed > 0 {
		line += fmt.Sprintf(", %s failed", FormatCount(snap.FilesFailed))
	}
	return line
}
