package disk

import (
	"sync"
)

// Scheduler serializes page requests per (file, pageNo) while letting
// requests for distinct pages proceed in parallel. The buffer core does its
// own I/O synchronously; the scheduler exists for bulk load paths that want
// to queue work without blocking.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		reqCh:       make(chan Request, 100),
		pageQueue:   make(map[pageKey]chan Request),
		pageQueueMu: sync.Mutex{},
	}

	go s.handleRequests()
	return s
}

func NewRequest(file *File, page Page, isWrite bool) Request {
	respCh := make(chan Response)
	return Request{
		File:   file,
		Page:   page,
		Write:  isWrite,
		RespCh: respCh,
	}
}

func (s *Scheduler) Schedule(req Request) <-chan Response {
	s.reqCh <- req
	return req.RespCh
}

func (s *Scheduler) handleRequests() {
	for req := range s.reqCh {
		key := pageKey{name: req.File.Name(), pageNo: req.Page.PageNo()}

		s.pageQueueMu.Lock()
		_, ok := s.pageQueue[key]
		if !ok {
			s.pageQueue[key] = make(chan Request, 10)
		}
		s.pageQueueMu.Unlock()

		s.pageQueue[key] <- req

		// !ok means we created a new page queue, therefore we should start a
		// new worker to handle the queue's page requests
		if !ok {
			go s.pageWorker(key, s.pageQueue[key])
		}
	}
}

func (s *Scheduler) pageWorker(key pageKey, reqQueue chan Request) {
	for {
		select {
		case req := <-reqQueue:
			if req.Write {
				err := req.File.WritePage(req.Page)
				req.RespCh <- Response{Err: err}
			} else {
				page, err := req.File.ReadPage(req.Page.PageNo())
				req.RespCh <- Response{Page: page, Err: err}
			}

		default:
			// done handling requests for this page, can remove it from queue
			s.pageQueueMu.Lock()
			delete(s.pageQueue, key)
			s.pageQueueMu.Unlock()
			return
		}
	}
}

type Scheduler struct {
	reqCh       chan Request
	pageQueue   map[pageKey]chan Request
	pageQueueMu sync.Mutex
}

type pageKey struct {
	name   string
	pageNo int
}

type Request struct {
	File   *File
	Page   Page
	Write  bool
	RespCh chan Response
}

type Response struct {
	Page Page
	Err  error
}
