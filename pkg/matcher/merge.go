package matcher

import "slices"

// mergeOffsets concatenates per-range results and returns them sorted
// ascending without duplicates. Ranges may have completed in any order.
// Called only after every worker has joined.
func mergeOffsets(parts [][]int) []int {
	total := 0
	for _, part := range parts {
		total += len(part)
	}
	if total == 0 {
		return nil
	}

	merged := make([]int, 0, total)
	for _, part := range parts {
		merged = append(merged, part...)
	}
	slices.Sort(merged)
	return slices.Compact(merged)
}
