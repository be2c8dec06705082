package refset

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// bitmap wraps a 32-bit Roaring Bitmap.
// Used for both directions of the reference index: target ids per document
// and document ordinals per target.
type bitmap struct {
	rb *roaring.Bitmap
}

func newBitmap() *bitmap {
	return &bitmap{rb: roaring.New()}
}

// add inserts id and reports whether it was absent.
func (b *bitmap) add(id uint32) bool {
	return b.rb.CheckedAdd(id)
}

// remove deletes id and reports whether it was present.
func (b *bitmap) remove(id uint32) bool {
	return b.rb.CheckedRemove(id)
}

func (b *bitmap) contains(id uint32) bool {
	return b.rb.Contains(id)
}

func (b *bitmap) isEmpty() bool {
	return b.rb.IsEmpty()
}

func (b *bitmap) cardinality() int {
	return int(b.rb.GetCardinality())
}

// toArray returns the members in ascending order.
func (b *bitmap) toArray() []uint32 {
	return b.rb.ToArray()
}

func (b *bitmap) forEach(fn func(id uint32) bool) {
	it := b.rb.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			return
		}
	}
}
