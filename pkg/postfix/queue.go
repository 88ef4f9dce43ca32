package postfix

import (
	"strings"

	"github.com/relayops/mailwatch/pkg/models"
)

// emptyQueueMarker is the line postqueue prints when the queue is empty.
const emptyQueueMarker = "Mail queue is empty"

// queueLineThreshold is the point at which a non-empty queue is considered
// unhealthy. postqueue prints one line per message plus a header and a
// trailing summary, so this roughly corresponds to ~48 queued messages.
const queueLineThreshold = 50

// ParseQueue interprets the output of `postqueue -p`. All knowledge of the
// CLI's textual format lives here.
func ParseQueue(output string) models.QueueStats {
	output = strings.TrimSpace(output)

	if strings.Contains(output, emptyQueueMarker) {
		return models.QueueStats{TotalMessages: 0, Status: "empty"}
	}

	lines := strings.Split(output, "\n")

	// Subtract the header and summary lines
	total := len(lines) - 2
	if total < 0 {
		total = 0
	}

	sample := lines
	if len(sample) > 5 {
		sample = sample[:5]
	}

	return models.QueueStats{
		TotalMessages: total,
		Status:        "has_messages",
		SampleOutput:  sample,
	}
}

// QueueHealthy reports whether the queue output indicates a healthy queue:
// either empty, or short enough to be draining normally.
func QueueHealthy(output string) bool {
	output = strings.TrimSpace(output)
	if strings.Contains(output, emptyQueueMarker) {
		return true
	}
	return len(strings.Split(output, "\n")) < queueLineThreshold
}
