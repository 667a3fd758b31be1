package util

import (
	"fmt"

	"github.com/njagi/pagebuf/storage/disk"
	"github.com/vmihailenco/msgpack"
)

// ToPayload marshals obj into a page-sized byte slice, zero padded.
func ToPayload[T any](obj T) ([]byte, error) {
	res := make([]byte, disk.PAGE_SIZE)

	data, err := msgpack.Marshal(obj)
	if err != nil {
		return nil, err
	}
	if len(data) > disk.PAGE_SIZE {
		return nil, fmt.Errorf("record needs %d bytes, page holds %d", len(data), disk.PAGE_SIZE)
	}
	copy(res, data)

	return res, nil
}

func FromPayload[T any](data []byte) (T, error) {
	var res T

	if err := msgpack.Unmarshal(data, &res); err != nil {
		return res, err
	}

	return res, nil
}
