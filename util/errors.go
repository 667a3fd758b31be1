package util

import "fmt"

type PagebufError struct {
	Message string
	Err     error
}

func (e *PagebufError) Error() string {
	return e.Message
}

func (e *PagebufError) Unwrap() error {
	return e.Err
}

// BufferExceededError is returned when the clock scan finds no evictable frame.
type BufferExceededError struct {
	*PagebufError
}

func NewBufferExceeded() *BufferExceededError {
	return &BufferExceededError{&PagebufError{Message: "all buffer frames are pinned"}}
}

// HashNotFoundError is returned by the page table when a key is absent.
type HashNotFoundError struct {
	*PagebufError
}

func NewHashNotFound(name string, pageNo int) *HashNotFoundError {
	return &HashNotFoundError{&PagebufError{
		Message: fmt.Sprintf("page %d of %s not found in page table", pageNo, name),
	}}
}

// DuplicateEntryError is returned when inserting a key the page table already holds.
type DuplicateEntryError struct {
	*PagebufError
}

func NewDuplicateEntry(name string, pageNo int) *DuplicateEntryError {
	return &DuplicateEntryError{&PagebufError{
		Message: fmt.Sprintf("page %d of %s already in page table", pageNo, name),
	}}
}

type PageNotPinnedError struct {
	*PagebufError
}

func NewPageNotPinned(name string, pageNo int) *PageNotPinnedError {
	return &PageNotPinnedError{&PagebufError{
		Message: fmt.Sprintf("page %d of %s is not pinned", pageNo, name),
	}}
}

type PagePinnedError struct {
	*PagebufError
}

func NewPagePinned(name string, pageNo int) *PagePinnedError {
	return &PagePinnedError{&PagebufError{
		Message: fmt.Sprintf("page %d of %s is still pinned", pageNo, name),
	}}
}

// BadBufferError indicates an invalid frame attributed to a file, an
// invariant violation rather than a caller mistake.
type BadBufferError struct {
	*PagebufError
}

func NewBadBuffer(frameNo int, name string) *BadBufferError {
	return &BadBufferError{&PagebufError{
		Message: fmt.Sprintf("frame %d holds an invalid page attributed to %s", frameNo, name),
	}}
}
