package buffer

import "github.com/njagi/pagebuf/storage/disk"

// File is the capability set the buffer manager needs from the disk layer.
// *disk.File satisfies it; tests substitute in-memory implementations.
type File interface {
	ReadPage(pageNo int) (disk.Page, error)
	WritePage(page disk.Page) error
	AllocatePage() (disk.Page, error)
	DeletePage(pageNo int) error
	Name() string
}

// Two handles denote the same underlying file iff their names match.
func sameFile(a, b File) bool {
	return a != nil && b != nil && a.Name() == b.Name()
}
