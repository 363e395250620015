package main

import "strings"

const noDescriptionMarker = "   (sem descrição)"

// formatEvent renders one event block: title header, date lines (all-day
// events get a single "Data:" line, timed events get "Início:"/"Fim:"),
// status, and the description indented one line at a time.
func formatEvent(ev *Event) string {
	var b strings.Builder
	b.WriteString("📅 " + ev.Summary + "\n")
	if ev.AllDay {
		b.WriteString("   Data: " + ev.Start.Format(dateLayout) + " (dia inteiro)\n")
	} else {
		b.WriteString("   Início: " + ev.Start.Format(dateTimeLayout) + "\n")
		b.WriteString("   Fim: " + ev.End.Format(dateTimeLayout) + "\n")
	}
	b.WriteString("   Status: " + ev.Status + "\n")
	if strings.TrimSpace(ev.Description) == "" {
		b.WriteString(noDescriptionMarker + "\n")
	} else {
		for _, line := range strings.Split(ev.Description, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			b.WriteString("   " + line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatEvents concatenates event blocks with a blank-line separator.
func formatEvents(events []*Event) string {
	blocks := make([]string, 0, len(events))
	for _, ev := range events {
		blocks = append(blocks, formatEvent(ev))
	}
	return strings.Join(blocks, "\n\n")
}
