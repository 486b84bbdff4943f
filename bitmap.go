package sparseset

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Bitmap exports the live handle set as a Roaring bitmap, for intersection
// and union with externally computed handle sets. The bitmap is a snapshot;
// later mutations of the container are not reflected.
func (c *container[S, D]) Bitmap() *roaring64.Bitmap {
	bm := roaring64.New()
	for _, h := range c.tab.denseToSparse[:c.tab.count] {
		bm.Add(uint64(h))
	}
	return bm
}
