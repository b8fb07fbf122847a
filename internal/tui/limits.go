package tui

import "sort"

var baseLimits = []int{15, 30, 60, 120}

// selectableLimits returns the cyclable time limits in seconds: the
// standard steps plus the configured custom value, sorted and deduped.
func selectableLimits(custom int) []int {
	limits := append([]int(nil), baseLimits...)
	limits = append(limits, custom)
	sort.Ints(limits)
	out := limits[:0]
	for i, v := range limits {
		if i > 0 && v == limits[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

func nextLimit(current, custom int) int {
	limits := selectableLimits(custom)
	for i, v := range limits {
		if v == current {
			return limits[(i+1)%len(limits)]
		}
	}
	return limits[0]
}

func prevLimit(current, custom int) int {
	limits := selectableLimits(custom)
	for i, v := range limits {
		if v == current {
			return limits[(i-1+len(limits))%len(limits)]
		}
	}
	return limits[len(limits)-1]
}
