package buffer

import (
	"fmt"

	"github.com/njagi/pagebuf/util"
)

// clockReplacer picks victim frames with the clock (second chance) algorithm.
// The hand starts at numBufs-1 so the first advance lands on frame 0.
func newClockReplacer(frames *frameTable, table *pageTable) *clockReplacer {
	return &clockReplacer{
		frames: frames,
		table:  table,
		hand:   frames.size() - 1,
	}
}

func (c *clockReplacer) advance() {
	c.hand = (c.hand + 1) % c.frames.size()
}

// victim returns a frame the caller may load a page into. The frame is either
// empty or has been evicted: dirty contents written back, page table entry
// removed, descriptor cleared. It fails with BufferExceededError once every
// frame has been seen as a pinned non-candidate.
func (c *clockReplacer) victim() (int, error) {
	numBufs := c.frames.size()
	scanned := 0

	for {
		c.advance()
		desc := &c.frames.descs[c.hand]

		if !desc.valid {
			return c.hand, nil
		}

		if desc.refbit {
			// second chance, eligible on the next lap
			desc.refbit = false
			continue
		}

		if desc.pinCnt > 0 {
			scanned++
			if scanned >= numBufs {
				return INVALID_FRAME_ID, util.NewBufferExceeded()
			}
			continue
		}

		if desc.dirty {
			if err := desc.file.WritePage(c.frames.pages[c.hand]); err != nil {
				return INVALID_FRAME_ID, fmt.Errorf("error flushing victim frame %d: %w", c.hand, err)
			}
			desc.dirty = false
		}

		if err := c.table.remove(desc.file, desc.pageNo); err != nil {
			return INVALID_FRAME_ID, err
		}
		desc.clear()

		return c.hand, nil
	}
}

type clockReplacer struct {
	frames *frameTable
	table  *pageTable
	hand   int
}
