package buffer

import (
	"github.com/njagi/pagebuf/util"
)

// tableSize is the capacity hint for the page table: 1.2x the pool size,
// truncated to an integer and made odd (an even value is bumped up by one).
func tableSize(numBufs int) int {
	return (int(float64(numBufs)*1.2) & -2) + 1
}

type tableKey struct {
	name   string
	pageNo int
}

// pageTable maps a resident (file, pageNo) to the frame holding it.
type pageTable struct {
	entries map[tableKey]int
}

func newPageTable(numBufs int) *pageTable {
	return &pageTable{
		entries: make(map[tableKey]int, tableSize(numBufs)),
	}
}

func (pt *pageTable) insert(file File, pageNo, frameId int) error {
	key := tableKey{name: file.Name(), pageNo: pageNo}

	if _, ok := pt.entries[key]; ok {
		return util.NewDuplicateEntry(file.Name(), pageNo)
	}
	pt.entries[key] = frameId

	return nil
}

func (pt *pageTable) lookup(file File, pageNo int) (int, error) {
	key := tableKey{name: file.Name(), pageNo: pageNo}

	frameId, ok := pt.entries[key]
	if !ok {
		return INVALID_FRAME_ID, util.NewHashNotFound(file.Name(), pageNo)
	}

	return frameId, nil
}

func (pt *pageTable) remove(file File, pageNo int) error {
	key := tableKey{name: file.Name(), pageNo: pageNo}

	if _, ok := pt.entries[key]; !ok {
		return util.NewHashNotFound(file.Name(), pageNo)
	}
	delete(pt.entries, key)

	return nil
}

func (pt *pageTable) size() int {
	return len(pt.entries)
}
