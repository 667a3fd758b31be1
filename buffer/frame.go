package buffer

import (
	"fmt"

	"github.com/njagi/pagebuf/storage/disk"
)

const INVALID_FRAME_ID = -1

// frameDesc tracks the state of one buffer frame. The file and pageNo fields
// are meaningful only while valid is set.
type frameDesc struct {
	frameNo int
	file    File
	pageNo  int
	pinCnt  int
	dirty   bool
	refbit  bool
	valid   bool
}

// set marks the frame occupied by (file, pageNo) with a single pin.
func (f *frameDesc) set(file File, pageNo int) {
	f.file = file
	f.pageNo = pageNo
	f.pinCnt = 1
	f.dirty = false
	f.refbit = true
	f.valid = true
}

// clear restores the frame to the empty state.
func (f *frameDesc) clear() {
	f.file = nil
	f.pageNo = disk.INVALID_PAGE_ID
	f.pinCnt = 0
	f.dirty = false
	f.refbit = false
	f.valid = false
}

func (f *frameDesc) dump() string {
	name := "<none>"
	if f.file != nil {
		name = f.file.Name()
	}

	return fmt.Sprintf("file:%s pageNo:%d pinCnt:%d dirty:%v refbit:%v valid:%v",
		name, f.pageNo, f.pinCnt, f.dirty, f.refbit, f.valid)
}

// frameTable pairs the descriptor array with the page buffers it describes.
// The descriptor at index i always has frameNo == i.
type frameTable struct {
	descs []frameDesc
	pages []disk.Page
}

func newFrameTable(numBufs int) *frameTable {
	ft := &frameTable{
		descs: make([]frameDesc, numBufs),
		pages: make([]disk.Page, numBufs),
	}

	for i := range ft.descs {
		ft.descs[i].frameNo = i
		ft.descs[i].pageNo = disk.INVALID_PAGE_ID
	}

	return ft
}

func (ft *frameTable) size() int {
	return len(ft.descs)
}
