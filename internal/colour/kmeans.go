package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand"
)

// Clusterer runs k-means clustering over the full pixel population of an
// image. Unlike a palette extractor it never samples: masked-out pixels are
// exactly black and are expected to collapse into one background cluster
// that the caller discards, so every pixel has to be counted for the cluster
// shares to mean anything.
type Clusterer struct {
	maxIterations int
	convergence   float64
}

// NewClusterer creates a Clusterer with default iteration settings.
func NewClusterer() *Clusterer {
	return &Clusterer{
		maxIterations: 50,
		convergence:   1.0,
	}
}

// Cluster partitions the image's pixels into k clusters and returns the
// per-pixel cluster assignment (row-major scan order) together with the
// cluster centres.
//
// The seed fully determines the run: the same image and seed produce
// identical labels and centres on every platform. Randomness is drawn from a
// local source, never from the global generator.
func (c *Clusterer) Cluster(img image.Image, k int, seed int64) ([]int, []Center, error) {
	if img == nil {
		return nil, nil, fmt.Errorf("image cannot be nil")
	}
	if k < 1 {
		return nil, nil, fmt.Errorf("cluster count must be at least 1, got %d", k)
	}

	points := flattenPixels(img)
	if len(points) == 0 {
		return nil, nil, fmt.Errorf("image has no pixels")
	}
	if len(points) < k {
		return nil, nil, fmt.Errorf("image has %d pixels, fewer than %d clusters", len(points), k)
	}

	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic clustering is the contract
	labels, centers := c.kmeans(points, k, rng)
	return labels, centers, nil
}

// flattenPixels converts the image to a flat row-major slice of RGB points.
func flattenPixels(img image.Image) []Center {
	bounds := img.Bounds()
	points := make([]Center, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgb := ToRGB(img.At(x, y))
			points = append(points, Center{
				R: float64(rgb.R),
				G: float64(rgb.G),
				B: float64(rgb.B),
			})
		}
	}
	return points
}

// kmeans performs k-means clustering on the pixel data.
// Returns the per-point assignments and the cluster centres.
func (c *Clusterer) kmeans(points []Center, k int, rng *rand.Rand) ([]int, []Center) {
	centers := c.initializeCentersKMeansPlusPlus(points, k, rng)
	assignments := make([]int, len(points))

	for iter := 0; iter < c.maxIterations; iter++ {
		// Assign each point to its nearest centre.
		changed := 0
		for i, point := range points {
			nearest := nearestCenter(point, centers)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			break
		}

		newCenters := c.recalculateCenters(points, assignments, k, rng)

		// Check for convergence based on centre movement.
		totalMovement := 0.0
		for i := range centers {
			totalMovement += centers[i].distance(newCenters[i])
		}
		centers = newCenters

		if totalMovement/float64(k) < c.convergence {
			break
		}
	}

	// Final assignment pass so labels are consistent with the returned centres.
	for i, point := range points {
		assignments[i] = nearestCenter(point, centers)
	}

	return assignments, centers
}

// initializeCentersKMeansPlusPlus seeds the centres using the k-means++
// scheme: the first centre is a random point, each following centre is chosen
// with probability proportional to its squared distance from the nearest
// existing centre.
func (c *Clusterer) initializeCentersKMeansPlusPlus(points []Center, k int, rng *rand.Rand) []Center {
	centers := make([]Center, 0, k)
	centers = append(centers, points[rng.Intn(len(points))])

	for len(centers) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0

		for i, point := range points {
			minDist := math.MaxFloat64
			for _, center := range centers {
				if dist := point.distance(center); dist < minDist {
					minDist = dist
				}
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			// Every remaining point coincides with an existing centre. Seed
			// the slot with a slightly perturbed duplicate so the requested
			// centre count is honoured; the duplicate ends up empty and
			// converges back onto the shared point.
			last := centers[len(centers)-1]
			centers = append(centers, Center{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				centers = append(centers, points[i])
				break
			}
		}
	}

	return centers
}

// nearestCenter finds the index of the nearest centre to a point.
// Ties resolve to the lowest index.
func nearestCenter(point Center, centers []Center) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, center := range centers {
		if dist := point.distance(center); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

// recalculateCenters recomputes centre positions from the assigned points.
func (c *Clusterer) recalculateCenters(points []Center, assignments []int, k int, rng *rand.Rand) []Center {
	sums := make([]Center, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centers := make([]Center, k)
	for i := 0; i < k; i++ {
		if counts[i] > 0 {
			centers[i] = Center{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			// Empty cluster, reseed from the point population.
			centers[i] = points[rng.Intn(len(points))]
		}
	}

	return centers
}
