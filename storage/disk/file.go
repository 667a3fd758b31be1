package disk

import (
	"fmt"
	"os"
)

func NewFile(file *os.File) *File {
	return &File{
		dbFile:       file,
		pageCapacity: DEFAULT_PAGE_CAPACITY,
		freeSlots:    []int{},
		pages:        map[int]int{},
	}
}

func (f *File) Name() string {
	return f.dbFile.Name()
}

func (f *File) ReadPage(pageNo int) (Page, error) {
	page := NewPage(pageNo)

	offset, ok := f.pages[pageNo]
	if !ok {
		return page, fmt.Errorf("page %d is not allocated in %s", pageNo, f.Name())
	}

	if _, err := f.dbFile.ReadAt(page.Data[:], int64(offset)); err != nil {
		return page, fmt.Errorf("error reading page %d at offset %d: %w", pageNo, offset, err)
	}

	return page, nil
}

func (f *File) WritePage(page Page) error {
	offset, ok := f.pages[page.PageNo()]
	if !ok {
		return fmt.Errorf("page %d is not allocated in %s", page.PageNo(), f.Name())
	}

	if _, err := f.dbFile.WriteAt(page.Data[:], int64(offset)); err != nil {
		return fmt.Errorf("error writing page %d at offset %d: %w", page.PageNo(), offset, err)
	}

	return nil
}

// AllocatePage reserves a slot for a fresh page, persists its zeroed contents
// and returns the page carrying its new number.
func (f *File) AllocatePage() (Page, error) {
	offset, err := f.allocateSlot()
	if err != nil {
		return Page{pageNo: INVALID_PAGE_ID}, err
	}

	page := NewPage(f.nextPageNo)
	f.pages[page.PageNo()] = offset
	f.nextPageNo++

	if _, err := f.dbFile.WriteAt(page.Data[:], int64(offset)); err != nil {
		delete(f.pages, page.PageNo())
		f.freeSlots = append(f.freeSlots, offset)
		return Page{pageNo: INVALID_PAGE_ID}, fmt.Errorf("error writing fresh page at offset %d: %w", offset, err)
	}

	return page, nil
}

func (f *File) DeletePage(pageNo int) error {
	if offset, ok := f.pages[pageNo]; ok {
		f.freeSlots = append(f.freeSlots, offset)
		delete(f.pages, pageNo)
	}

	return nil
}

func (f *File) allocateSlot() (int, error) {
	if len(f.freeSlots) > 0 {
		offset := f.freeSlots[0]
		f.freeSlots = f.freeSlots[1:]

		return offset, nil
	}

	if f.nextOffset+PAGE_SIZE > f.pageCapacity*PAGE_SIZE {
		f.pageCapacity *= 2
		if err := os.Truncate(f.dbFile.Name(), int64(f.pageCapacity)*PAGE_SIZE); err != nil {
			return -1, fmt.Errorf("error resizing db file: %w", err)
		}
	}

	offset := f.nextOffset
	f.nextOffset += PAGE_SIZE
	return offset, nil
}

type File struct {
	dbFile       *os.File
	pages        map[int]int
	freeSlots    []int
	pageCapacity int
	nextOffset   int
	nextPageNo   int
}
