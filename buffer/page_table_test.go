package buffer

import (
	"testing"

	"github.com/njagi/pagebuf/util"
	"github.com/stretchr/testify/assert"
)

func TestPageTable(t *testing.T) {
	t.Run("insert then lookup", func(t *testing.T) {
		file := newMockFile("a.db")
		table := newPageTable(3)

		assert.NoError(t, table.insert(file, 1, 0))

		frameId, err := table.lookup(file, 1)
		assert.NoError(t, err)
		assert.Equal(t, 0, frameId)
	})

	t.Run("lookup of an absent key fails", func(t *testing.T) {
		file := newMockFile("a.db")
		table := newPageTable(3)

		frameId, err := table.lookup(file, 9)

		var notFound *util.HashNotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, INVALID_FRAME_ID, frameId)
	})

	t.Run("duplicate insert fails", func(t *testing.T) {
		file := newMockFile("a.db")
		table := newPageTable(3)

		assert.NoError(t, table.insert(file, 1, 0))
		err := table.insert(file, 1, 2)

		var dup *util.DuplicateEntryError
		assert.ErrorAs(t, err, &dup)

		// original mapping is untouched
		frameId, err := table.lookup(file, 1)
		assert.NoError(t, err)
		assert.Equal(t, 0, frameId)
	})

	t.Run("remove drops the mapping", func(t *testing.T) {
		file := newMockFile("a.db")
		table := newPageTable(3)

		assert.NoError(t, table.insert(file, 1, 0))
		assert.NoError(t, table.remove(file, 1))
		assert.Equal(t, 0, table.size())

		var notFound *util.HashNotFoundError
		assert.ErrorAs(t, table.remove(file, 1), &notFound)
	})

	t.Run("same page number in different files are distinct keys", func(t *testing.T) {
		fileA := newMockFile("a.db")
		fileB := newMockFile("b.db")
		table := newPageTable(3)

		assert.NoError(t, table.insert(fileA, 1, 0))
		assert.NoError(t, table.insert(fileB, 1, 1))

		frameId, err := table.lookup(fileB, 1)
		assert.NoError(t, err)
		assert.Equal(t, 1, frameId)
	})

	t.Run("capacity hint is odd", func(t *testing.T) {
		for _, numBufs := range []int{1, 2, 3, 10, 100} {
			assert.Equal(t, 1, tableSize(numBufs)%2)
		}
	})
}
