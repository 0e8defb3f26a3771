package colour

import (
	"gonum.org/v1/gonum/floats"
)

// ColorInformation turns a cluster assignment and centre list into ranked
// colour records.
//
// When hasThresholding is set, the black background cluster is removed first
// and every surviving cluster index above the removed one is shifted down by
// one, so the reported index keeps addressing a valid row in the compacted
// centre list. Percentages are computed over the remaining population only
// and the records come back in descending population order.
//
// An image whose counted population vanishes entirely after black removal
// (no skin detected anywhere) yields an empty slice, not an error.
func ColorInformation(labels []int, centers []Center, hasThresholding bool) []Record {
	counts := make(map[int]int, len(centers))
	for _, label := range labels {
		counts[label]++
	}

	removedIdx := -1
	removed := false
	if hasThresholding {
		counts, centers, removedIdx, removed = RemoveBlack(counts, centers)
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return nil
	}

	records := make([]Record, 0, len(counts))
	for _, idx := range orderByPopulation(counts) {
		// Compact the index across the removed row. Valid only because at
		// most one cluster is ever removed.
		reportedIdx := idx
		if removed && idx > removedIdx {
			reportedIdx = idx - 1
		}
		records = append(records, Record{
			ClusterIndex: reportedIdx,
			Color:        centers[reportedIdx].RGB(),
			Percentage:   float64(counts[idx]) / float64(total),
		})
	}
	return records
}

// TotalShare sums the percentage column of a record set. The result is 1.0
// within floating-point tolerance for any non-empty run.
func TotalShare(records []Record) float64 {
	shares := make([]float64, len(records))
	for i, r := range records {
		shares[i] = r.Percentage
	}
	return floats.Sum(shares)
}
