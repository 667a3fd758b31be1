package buffer

import (
	"testing"

	"github.com/njagi/pagebuf/storage/disk"
	"github.com/njagi/pagebuf/util"
	"github.com/stretchr/testify/assert"
)

func TestClockReplacer(t *testing.T) {
	t.Run("hand starts before frame zero", func(t *testing.T) {
		frames := newFrameTable(3)
		replacer := newClockReplacer(frames, newPageTable(3))

		assert.Equal(t, 2, replacer.hand)

		frameId, err := replacer.victim()
		assert.NoError(t, err)
		assert.Equal(t, 0, frameId)
	})

	t.Run("empty frame is returned immediately", func(t *testing.T) {
		file := newMockFile("a.db")
		frames := newFrameTable(3)
		table := newPageTable(3)
		replacer := newClockReplacer(frames, table)

		// frame 0 occupied, frame 1 empty
		frames.descs[0].set(file, 1)
		assert.NoError(t, table.insert(file, 1, 0))

		frameId, err := replacer.victim()
		assert.NoError(t, err)
		assert.Equal(t, 1, frameId)

		// occupied frame untouched except for its cleared refbit
		assert.True(t, frames.descs[0].valid)
		assert.Equal(t, 1, table.size())
	})

	t.Run("referenced frames get a second chance", func(t *testing.T) {
		file := newMockFile("a.db")
		frames := newFrameTable(2)
		table := newPageTable(2)
		replacer := newClockReplacer(frames, table)

		for i := range frames.descs {
			frames.descs[i].set(file, i)
			frames.descs[i].pinCnt = 0
			assert.NoError(t, table.insert(file, i, i))
		}

		// both refbits are set; the scan clears them and wraps back to frame 0
		frameId, err := replacer.victim()
		assert.NoError(t, err)
		assert.Equal(t, 0, frameId)

		assert.False(t, frames.descs[0].valid)
		assert.False(t, frames.descs[1].refbit)

		_, err = table.lookup(file, 0)
		var notFound *util.HashNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("dirty victims are written back first", func(t *testing.T) {
		file := newMockFile("a.db")
		frames := newFrameTable(1)
		table := newPageTable(1)
		replacer := newClockReplacer(frames, table)

		frames.descs[0].set(file, 5)
		frames.descs[0].pinCnt = 0
		frames.descs[0].refbit = false
		frames.descs[0].dirty = true
		frames.pages[0] = disk.NewPage(5)
		copy(frames.pages[0].Data[:], []byte("marker"))
		assert.NoError(t, table.insert(file, 5, 0))

		frameId, err := replacer.victim()
		assert.NoError(t, err)
		assert.Equal(t, 0, frameId)

		assert.Equal(t, 1, file.opCount("write 5"))
		page5 := file.pages[5]
		assert.Equal(t, []byte("marker"), page5.Data[:6])
		assert.False(t, frames.descs[0].valid)
		assert.Equal(t, 0, table.size())
	})

	t.Run("fails once every frame is a pinned non-candidate", func(t *testing.T) {
		file := newMockFile("a.db")
		frames := newFrameTable(3)
		table := newPageTable(3)
		replacer := newClockReplacer(frames, table)

		for i := range frames.descs {
			frames.descs[i].set(file, i)
			assert.NoError(t, table.insert(file, i, i))
		}

		frameId, err := replacer.victim()

		var exceeded *util.BufferExceededError
		assert.ErrorAs(t, err, &exceeded)
		assert.Equal(t, INVALID_FRAME_ID, frameId)

		// pinned frames stay resident
		for i := range frames.descs {
			assert.True(t, frames.descs[i].valid)
			assert.Equal(t, 1, frames.descs[i].pinCnt)
		}
		assert.Equal(t, 3, table.size())
	})
}
