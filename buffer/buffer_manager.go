package buffer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/njagi/pagebuf/storage/disk"
	"github.com/njagi/pagebuf/util"
)

// BufferManager caches numBufs disk pages in memory. Returned page pointers
// alias the frame buffers and stay valid while the frame remains pinned.
// A manager supports one caller at a time; operations are not safe for
// concurrent use.
func NewBufferManager(numBufs int) *BufferManager {
	frames := newFrameTable(numBufs)
	table := newPageTable(numBufs)

	return &BufferManager{
		frames:   frames,
		table:    table,
		replacer: newClockReplacer(frames, table),
	}
}

// ReadPage pins the page in a frame and returns a pointer into the pool,
// fetching from disk if it is not resident.
func (b *BufferManager) ReadPage(file File, pageNo int) (*disk.Page, error) {
	if frameId, err := b.table.lookup(file, pageNo); err == nil {
		desc := &b.frames.descs[frameId]
		desc.refbit = true
		desc.pinCnt++
		b.hits++

		return &b.frames.pages[frameId], nil
	}
	b.misses++

	frameId, err := b.replacer.victim()
	if err != nil {
		return nil, err
	}

	page, err := file.ReadPage(pageNo)
	if err != nil {
		return nil, fmt.Errorf("error reading page %d of %s: %w", pageNo, file.Name(), err)
	}

	b.frames.pages[frameId] = page
	b.frames.descs[frameId].set(file, pageNo)
	if err := b.table.insert(file, pageNo, frameId); err != nil {
		b.frames.descs[frameId].clear()
		return nil, err
	}

	return &b.frames.pages[frameId], nil
}

// AllocPage allocates a fresh page in file, pins it in a frame and returns
// its number together with a pointer into the pool. The allocation is
// persisted by the file even if no frame can be found for it.
func (b *BufferManager) AllocPage(file File) (int, *disk.Page, error) {
	page, err := file.AllocatePage()
	if err != nil {
		return disk.INVALID_PAGE_ID, nil, fmt.Errorf("error allocating page in %s: %w", file.Name(), err)
	}
	pageNo := page.PageNo()

	frameId, err := b.replacer.victim()
	if err != nil {
		return disk.INVALID_PAGE_ID, nil, err
	}

	b.frames.pages[frameId] = page
	b.frames.descs[frameId].set(file, pageNo)
	if err := b.table.insert(file, pageNo, frameId); err != nil {
		b.frames.descs[frameId].clear()
		return disk.INVALID_PAGE_ID, nil, err
	}

	return pageNo, &b.frames.pages[frameId], nil
}

// UnpinPage drops one pin. The dirty flag is sticky: unpinning with
// dirty=false never cleans a page that was marked dirty earlier. Unpinning a
// page that is not resident is tolerated.
func (b *BufferManager) UnpinPage(file File, pageNo int, dirty bool) error {
	frameId, err := b.table.lookup(file, pageNo)
	if err != nil {
		slog.Warn("unpinning a page that is not resident", "file", file.Name(), "pageNo", pageNo)
		return nil
	}

	desc := &b.frames.descs[frameId]
	if desc.pinCnt == 0 {
		return util.NewPageNotPinned(file.Name(), pageNo)
	}

	desc.pinCnt--
	if dirty {
		desc.dirty = true
	}

	return nil
}

// FlushFile writes back every dirty resident page of file and drops all of
// its frames. The scan stops at the first failure, so some frames may
// already be flushed and cleared when an error is returned.
func (b *BufferManager) FlushFile(file File) error {
	for i := range b.frames.descs {
		desc := &b.frames.descs[i]

		if !sameFile(desc.file, file) {
			continue
		}
		if !desc.valid {
			return util.NewBadBuffer(desc.frameNo, file.Name())
		}
		if desc.pinCnt > 0 {
			return util.NewPagePinned(file.Name(), desc.pageNo)
		}

		if desc.dirty {
			if err := file.WritePage(b.frames.pages[i]); err != nil {
				return fmt.Errorf("error flushing page %d of %s: %w", desc.pageNo, file.Name(), err)
			}
			desc.dirty = false
		}

		if err := b.table.remove(file, desc.pageNo); err != nil {
			return err
		}
		desc.clear()
	}

	return nil
}

// DisposePage drops the page from the pool if resident, then deletes it from
// the file. Disposing a page that is not resident is fine.
func (b *BufferManager) DisposePage(file File, pageNo int) error {
	if frameId, err := b.table.lookup(file, pageNo); err == nil {
		b.frames.descs[frameId].clear()
		if err := b.table.remove(file, pageNo); err != nil {
			return err
		}
	}

	if err := file.DeletePage(pageNo); err != nil {
		return fmt.Errorf("error deleting page %d of %s: %w", pageNo, file.Name(), err)
	}

	return nil
}

// Close writes back every dirty resident page. Frames stay resident so a
// caller inspecting state after Close sees them; the manager is not meant to
// be used afterwards.
func (b *BufferManager) Close() error {
	var errs error

	for i := range b.frames.descs {
		desc := &b.frames.descs[i]
		if !desc.valid || !desc.dirty {
			continue
		}

		if err := desc.file.WritePage(b.frames.pages[i]); err != nil {
			errs = errors.Join(errs, fmt.Errorf("error flushing frame %d: %w", i, err))
			continue
		}
		desc.dirty = false
	}

	return errs
}

// PrintSelf dumps every frame descriptor and the hit counters.
func (b *BufferManager) PrintSelf() {
	validFrames := 0

	for i := range b.frames.descs {
		fmt.Printf("FrameNo:%d %s\n", i, b.frames.descs[i].dump())
		if b.frames.descs[i].valid {
			validFrames++
		}
	}

	fmt.Printf("Total Number of Valid Frames:%d\n", validFrames)
	fmt.Printf("hits:%d misses:%d\n", b.hits, b.misses)
}

type BufferManager struct {
	frames   *frameTable
	table    *pageTable
	replacer *clockReplacer
	hits     int
	misses   int
}
