package buffer

import (
	"fmt"

	"github.com/njagi/pagebuf/storage/disk"
)

// mockFile is an in-memory File that records every call it receives so tests
// can assert on I/O order.
type mockFile struct {
	name       string
	pages      map[int]disk.Page
	nextPageNo int
	ops        []string
}

func newMockFile(name string) *mockFile {
	return &mockFile{
		name:  name,
		pages: map[int]disk.Page{},
	}
}

// addPage seeds a page as if it already existed on disk.
func (m *mockFile) addPage(pageNo int, payload []byte) {
	page := disk.NewPage(pageNo)
	copy(page.Data[:], payload)
	m.pages[pageNo] = page

	if pageNo >= m.nextPageNo {
		m.nextPageNo = pageNo + 1
	}
}

func (m *mockFile) ReadPage(pageNo int) (disk.Page, error) {
	m.ops = append(m.ops, fmt.Sprintf("read %d", pageNo))

	page, ok := m.pages[pageNo]
	if !ok {
		return disk.Page{}, fmt.Errorf("page %d is not allocated in %s", pageNo, m.name)
	}

	return page, nil
}

func (m *mockFile) WritePage(page disk.Page) error {
	m.ops = append(m.ops, fmt.Sprintf("write %d", page.PageNo()))
	m.pages[page.PageNo()] = page

	return nil
}

func (m *mockFile) AllocatePage() (disk.Page, error) {
	page := disk.NewPage(m.nextPageNo)
	m.pages[m.nextPageNo] = page
	m.ops = append(m.ops, fmt.Sprintf("alloc %d", m.nextPageNo))
	m.nextPageNo++

	return page, nil
}

func (m *mockFile) DeletePage(pageNo int) error {
	m.ops = append(m.ops, fmt.Sprintf("delete %d", pageNo))
	delete(m.pages, pageNo)

	return nil
}

func (m *mockFile) Name() string {
	return m.name
}

// opCount counts recorded calls matching op, e.g. "write 3".
func (m *mockFile) opCount(op string) int {
	count := 0
	for _, o := range m.ops {
		if o == op {
			count++
		}
	}

	return count
}
