package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timedEvent(summary, description string) *Event {
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, testLoc)
	return &Event{
		ID:          "ev-1",
		Summary:     summary,
		Description: description,
		Start:       start,
		End:         start.Add(time.Hour),
		Status:      "confirmed",
	}
}

func TestFormatTimedEvent(t *testing.T) {
	out := formatEvent(timedEvent("Reunião", "Pauta da sprint"))

	assert.Contains(t, out, "📅 Reunião")
	assert.Contains(t, out, "Início: 10/03/2025 15:00")
	assert.Contains(t, out, "Fim: 10/03/2025 16:00")
	assert.Contains(t, out, "Status: confirmed")
	assert.Contains(t, out, "   Pauta da sprint")
	assert.NotContains(t, out, "Data:")
}

func TestFormatAllDayEvent(t *testing.T) {
	ev := timedEvent("Feriado", "")
	ev.AllDay = true

	out := formatEvent(ev)
	assert.Contains(t, out, "Data: 10/03/2025 (dia inteiro)")
	assert.NotContains(t, out, "Início:")
	assert.NotContains(t, out, "Fim:")
}

func TestFormatEmptyDescription(t *testing.T) {
	out := formatEvent(timedEvent("Reunião", ""))

	count := strings.Count(out, "(sem descrição)")
	assert.Equal(t, 1, count)
	// No trailing blank block.
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestFormatMultilineDescription(t *testing.T) {
	out := formatEvent(timedEvent("Reunião", "linha um\n\nlinha dois\n"))

	lines := strings.Split(out, "\n")
	var descLines []string
	for _, line := range lines {
		if line == "   linha um" || line == "   linha dois" {
			descLines = append(descLines, line)
		}
	}
	require.Len(t, descLines, 2)
	assert.NotContains(t, out, "(sem descrição)")
}

func TestFormatEventsSeparatedByBlankLine(t *testing.T) {
	events := []*Event{timedEvent("Um", ""), timedEvent("Dois", "")}

	out := formatEvents(events)
	blocks := strings.Split(out, "\n\n")
	assert.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "Um")
	assert.Contains(t, blocks[1], "Dois")
}
