package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/njagi/pagebuf/buffer"
	"github.com/njagi/pagebuf/storage/disk"
	"github.com/njagi/pagebuf/util"
)

type record struct {
	ID   int
	Body string
}

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	dbPath := flag.String("db", "", "database file, overrides the config")
	poolSize := flag.Int("bufs", 0, "buffer pool size, overrides the config")
	records := flag.Int("records", 0, "number of records to load, overrides the config")
	flag.Parse()

	opts, err := loadOptions(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *dbPath != "" {
		opts.DbPath = *dbPath
	}
	if *poolSize > 0 {
		opts.PoolSize = *poolSize
	}
	if *records > 0 {
		opts.Records = *records
	}

	initLogger(os.Stderr, opts.LogLevel)

	if err := run(opts); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	dbFile, err := os.OpenFile(opts.DbPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("error opening db file %s: %w", opts.DbPath, err)
	}
	defer dbFile.Close()

	file := disk.NewFile(dbFile)
	bm := buffer.NewBufferManager(opts.PoolSize)
	defer func() {
		if err := bm.Close(); err != nil {
			slog.Error("error flushing pool on shutdown", "err", err)
		}
	}()

	slog.Info("loading records", "db", opts.DbPath, "bufs", opts.PoolSize, "records", opts.Records)

	pageNos := make([]int, 0, opts.Records)
	for i := 0; i < opts.Records; i++ {
		pageNo, page, err := bm.AllocPage(file)
		if err != nil {
			return fmt.Errorf("error allocating record page: %w", err)
		}

		payload, err := util.ToPayload(record{ID: i, Body: fmt.Sprintf("record-%d", i)})
		if err != nil {
			return fmt.Errorf("error encoding record %d: %w", i, err)
		}
		copy(page.Data[:], payload)

		if err := bm.UnpinPage(file, pageNo, true); err != nil {
			return err
		}
		pageNos = append(pageNos, pageNo)
	}

	if err := bm.FlushFile(file); err != nil {
		return fmt.Errorf("error flushing %s: %w", file.Name(), err)
	}
	slog.Info("flushed records to disk", "count", len(pageNos))

	if err := verify(file, pageNos); err != nil {
		return err
	}
	slog.Info("verified records", "count", len(pageNos))

	bm.PrintSelf()
	return nil
}

// verify rereads every record page through the disk scheduler and checks the
// decoded payloads.
func verify(file *disk.File, pageNos []int) error {
	scheduler := disk.NewScheduler()

	resps := make([]<-chan disk.Response, 0, len(pageNos))
	for _, pageNo := range pageNos {
		resps = append(resps, scheduler.Schedule(disk.NewRequest(file, disk.NewPage(pageNo), false)))
	}

	for i, respCh := range resps {
		resp := <-respCh
		if resp.Err != nil {
			return fmt.Errorf("error rereading page %d: %w", pageNos[i], resp.Err)
		}

		got, err := util.FromPayload[record](resp.Page.Data[:])
		if err != nil {
			return fmt.Errorf("error decoding record on page %d: %w", pageNos[i], err)
		}
		if got.ID != i {
			return fmt.Errorf("page %d holds record %d, want %d", pageNos[i], got.ID, i)
		}
	}

	return nil
}
