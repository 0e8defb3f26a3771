package colour

import (
	"fmt"
	"image"
)

// DominantColors clusters the image's pixels and returns ranked colour
// records for the k most prevalent colours.
//
// With removeBlack set, one extra cluster is requested internally to absorb
// the masked-out black background before it is filtered away again; callers
// still must not assume exactly k records come back, since an image with no
// skin at all collapses into the discarded background cluster.
func (c *Clusterer) DominantColors(img image.Image, k int, removeBlack bool, seed int64) ([]Record, error) {
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be at least 1, got %d", k)
	}

	clusters := k
	if removeBlack {
		// Reserve a slot for the anticipated background cluster.
		clusters = k + 1
	}

	labels, centers, err := c.Cluster(img, clusters, seed)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}

	return ColorInformation(labels, centers, removeBlack), nil
}
