// Package stats contains statistics calculations and history reporting.
package stats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/retype/internal/model"
)

const (
	recentTableRows     = 20
	terminalWidthBackup = 80
	minTrendWidth       = 10
)

// RenderHistory prints a summary, a recent-session table, and a WPM
// trend for the given records, oldest first.
func RenderHistory(w io.Writer, recs []model.SessionRecord, curveWindow int) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}
	if err := renderSummary(w, recs); err != nil {
		return err
	}
	if err := renderRecentTable(w, recs); err != nil {
		return err
	}
	return renderTrend(w, recs, curveWindow)
}

func renderSummary(w io.Writer, recs []model.SessionRecord) error {
	var totalWPM, totalAcc, bestWPM float64
	var totalMs int64
	for _, r := range recs {
		wpm, _, acc := Metrics(r.Correct, r.InputLen, r.TargetLen, r.DurationMs)
		totalWPM += wpm
		totalAcc += acc
		totalMs += r.DurationMs
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(recs))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(recs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.2f\n", bestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", (totalAcc/count)*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time typed: %s\n", (time.Duration(totalMs) * time.Millisecond).Round(time.Second)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderRecentTable(w io.Writer, recs []model.SessionRecord) error {
	start := 0
	if len(recs) > recentTableRows {
		start = len(recs) - recentTableRows
	}
	headers := []string{"Ended", "File", "WPM", "Acc", "Duration"}
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	rows := make([][]string, 0, len(recs)-start)
	for _, r := range recs[start:] {
		wpm, _, acc := Metrics(r.Correct, r.InputLen, r.TargetLen, r.DurationMs)
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			filepath.Base(r.FilePath),
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.1f%%", acc*100),
			(time.Duration(r.DurationMs) * time.Millisecond).Round(time.Second).String(),
		})
	}
	if _, err := fmt.Fprintln(w, "Recent sessions"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderTrend(w io.Writer, recs []model.SessionRecord, curveWindow int) error {
	values := make([]float64, len(recs))
	for i, r := range recs {
		wpm, _, _ := Metrics(r.Correct, r.InputLen, r.TargetLen, r.DurationMs)
		values[i] = wpm
	}
	width := terminalWidth() - 12
	if width < minTrendWidth {
		width = minTrendWidth
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	smoothed := MovingAverage(values, curveWindow)
	if _, err := fmt.Fprintf(w, "WPM trend  %s\n", Sparkline(values)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Smoothed   %s\n", Sparkline(smoothed))
	return err
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
