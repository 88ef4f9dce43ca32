package postfix

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Literal outputs captured from postqueue(1).
const emptyQueueOutput = "Mail queue is empty\n"

const shortQueueOutput = `-Queue ID- --Size-- ----Arrival Time---- -Sender/Recipient-------
B1F5D1A2C3     4567 Mon Aug 31 10:00:00  sender@example.com
                                         recipient@example.org

-- 4 Kbytes in 1 Request.
`

func longQueueOutput() string {
	var b strings.Builder
	b.WriteString("-Queue ID- --Size-- ----Arrival Time---- -Sender/Recipient-------\n")
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "B1F5D1A2%02d     4567 Mon Aug 31 10:00:00  sender@example.com\n", i)
	}
	b.WriteString("-- 240 Kbytes in 60 Requests.\n")
	return b.String()
}

func TestParseQueueEmpty(t *testing.T) {
	stats := ParseQueue(emptyQueueOutput)

	assert.Equal(t, 0, stats.TotalMessages)
	assert.Equal(t, "empty", stats.Status)
	assert.Empty(t, stats.SampleOutput)
}

func TestParseQueueWithMessages(t *testing.T) {
	stats := ParseQueue(shortQueueOutput)

	assert.Equal(t, "has_messages", stats.Status)
	assert.Equal(t, 3, stats.TotalMessages)
	assert.Len(t, stats.SampleOutput, 5)
	assert.Contains(t, stats.SampleOutput[0], "-Queue ID-")
}

func TestParseQueueBlankOutput(t *testing.T) {
	stats := ParseQueue("\n")

	assert.Equal(t, "has_messages", stats.Status)
	assert.Equal(t, 0, stats.TotalMessages)
}

func TestQueueHealthyWhenEmpty(t *testing.T) {
	assert.True(t, QueueHealthy(emptyQueueOutput))
}

func TestQueueHealthyWhenShort(t *testing.T) {
	assert.True(t, QueueHealthy(shortQueueOutput))
}

func TestQueueUnhealthyWhenLong(t *testing.T) {
	assert.False(t, QueueHealthy(longQueueOutput()))
}
