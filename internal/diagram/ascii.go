package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"
)

// ASCIIChart renders a time series as a terminal line chart. Series longer than
// width are resampled by taking the largest magnitude in each bucket so peaks
// survive.
func ASCIIChart(y []float64, caption string, width, height int) string {
	if len(y) == 0 {
		return ""
	}
	data := y
	if width > 0 && len(y) > width {
		data = downsample(y, width)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.Precision(4),
	)
}

// downsample reduces y to n buckets keeping the sample of largest magnitude
func downsample(y []float64, n int) []float64 {
	out := make([]float64, n)
	bucket := float64(len(y)) / float64(n)
	for i := 0; i < n; i++ {
		lo := int(float64(i) * bucket)
		hi := int(float64(i+1) * bucket)
		if hi > len(y) {
			hi = len(y)
		}
		if hi <= lo {
			hi = lo + 1
		}
		best := y[lo]
		for _, v := range y[lo:hi] {
			if abs(v) > abs(best) {
				best = v
			}
		}
		out[i] = best
	}
	return out
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if k := utf8.RuneCountInString(s); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
