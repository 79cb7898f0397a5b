package data

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// Key source backed by a memory-mapped text file.
type FileSource struct {
	Path string

	file *os.File
	mm   mmap.MMap
}

// Open an existing input file for reading. The file is mapped read-only for
// the lifetime of the source.
func OpenFileSource(path string) (KeySource, error) {
	var err error

	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open input file %v", path)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "Couldn't stat input file %v", path)
	}

	src := &FileSource{Path: path, file: f}

	// mmap refuses zero-length mappings, an empty file is just an empty source
	if stat.Size() == 0 {
		return src, nil
	}

	src.mm, err = mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "Failed to map input file %v", path)
	}
	adviseSequential(src.mm)

	return src, nil
}

func (self *FileSource) Load(n int) ([]int32, error) {
	if self.file == nil {
		return nil, errors.Errorf("Input file %v is closed", self.Path)
	}

	list, err := ReadInts(bytes.NewReader(self.mm), n)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't load %v", self.Path)
	}
	return list, nil
}

func (self *FileSource) Close() error {
	if self.file == nil {
		return nil
	}

	var err error
	if self.mm != nil {
		err = self.mm.Unmap()
		self.mm = nil
	}

	if closeErr := self.file.Close(); err == nil {
		err = closeErr
	}
	self.file = nil
	return err
}

// Read the first n integers of the file at path
func LoadFile(path string, n int) ([]int32, error) {
	src, err := OpenFileSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return src.Load(n)
}
