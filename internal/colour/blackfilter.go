package colour

import "sort"

// RemoveBlack drops the background cluster produced by skin masking.
//
// Clusters are scanned in descending population order; the first one whose
// centre truncates to exactly (0,0,0) is removed from the count mapping and
// its row deleted from the centre list. At most one cluster is ever removed:
// masking produces a single background class, and the delete-and-compact
// index shift downstream is only valid for a single removal.
//
// If no cluster matches exactly black, removed is false and the inputs are
// returned unchanged.
func RemoveBlack(counts map[int]int, centers []Center) (map[int]int, []Center, int, bool) {
	for _, idx := range orderByPopulation(counts) {
		if !centers[idx].IsBlack() {
			continue
		}
		filtered := make(map[int]int, len(counts)-1)
		for i, n := range counts {
			if i != idx {
				filtered[i] = n
			}
		}
		trimmed := make([]Center, 0, len(centers)-1)
		trimmed = append(trimmed, centers[:idx]...)
		trimmed = append(trimmed, centers[idx+1:]...)
		return filtered, trimmed, idx, true
	}
	return counts, centers, -1, false
}

// orderByPopulation returns the cluster indices present in counts, largest
// population first. Ties resolve to the lower index so the ordering is
// reproducible.
func orderByPopulation(counts map[int]int) []int {
	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(a, b int) bool {
		if counts[indices[a]] != counts[indices[b]] {
			return counts[indices[a]] > counts[indices[b]]
		}
		return indices[a] < indices[b]
	})
	return indices
}
