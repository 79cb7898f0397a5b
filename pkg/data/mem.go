package data

import (
	"bytes"
)

// In-memory key source. Holds the raw text of the input (whitespace separated
// integers), parsing happens on Load.
type MemSource struct {
	buf []byte
}

func NewMemSource(raw []byte) *MemSource {
	return &MemSource{buf: raw}
}

// Convenience constructor for tests: encode list as text and wrap it.
func NewMemSourceInts(list []int32) (*MemSource, error) {
	var buf bytes.Buffer
	if err := WriteInts(&buf, list); err != nil {
		return nil, err
	}
	return &MemSource{buf: buf.Bytes()}, nil
}

func (self *MemSource) Load(n int) ([]int32, error) {
	return ReadInts(bytes.NewReader(self.buf), n)
}

func (self *MemSource) Close() error {
	return nil
}
