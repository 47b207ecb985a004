package lmbin

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ReadSanityHeader reads exactly SanityHeaderSize bytes from r and checks
// them against the reference header.
//
// Read failures, including short files, are returned unchanged
// (io.EOF, io.ErrUnexpectedEOF, ...). A readable header that differs from
// the reference yields a *FormatError wrapping ErrSanityFormat.
func ReadSanityHeader(r io.Reader) (SanityHeader, error) {
	var buf [SanityHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return SanityHeader{}, err
	}
	return validate(buf[:])
}

// CheckFile validates the header of the model at path.
func CheckFile(path string) (SanityHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return SanityHeader{}, err
	}
	defer func() { _ = f.Close() }()

	return ReadSanityHeader(f)
}

// File is a validated binary model held in memory.
type File struct {
	Path   string
	Data   []byte
	Header SanityHeader

	mmapped bool
}

type openOptions struct {
	noMmap bool
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

// WithoutMmap reads the model into memory instead of mapping it.
func WithoutMmap() OpenOption {
	return func(o *openOptions) { o.noMmap = true }
}

// Open validates the sanity header of the model at path and then maps the
// file read-only. The header is checked before the mapping is made and again
// on the mapped bytes. If mmap is unavailable it falls back to ReadAt.
// The returned file must be closed to release the mapping.
func Open(path string, opts ...OpenOption) (*File, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if _, err := ReadSanityHeader(f); err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, ErrFileTooLarge
	}
	size := int(size64)

	if !o.noMmap {
		data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
		if err == nil {
			mf, vErr := newFile(path, data, true)
			if vErr != nil {
				_ = unix.Munmap(data)
				return nil, vErr
			}
			return mf, nil
		}
	}

	data, err := readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return newFile(path, data, false)
}

// OpenReaderAt loads and validates a model from a random-access reader
// without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if _, err := ReadSanityHeader(io.NewSectionReader(r, 0, size)); err != nil {
		return nil, err
	}
	if size > int64(int(^uint(0)>>1)) {
		return nil, ErrFileTooLarge
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return newFile("", data, false)
}

func newFile(path string, data []byte, mmapped bool) (*File, error) {
	if len(data) < SanityHeaderSize {
		// The file shrank after the header was read.
		return nil, io.ErrUnexpectedEOF
	}
	hdr, err := validate(data)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Data: data, Header: hdr, mmapped: mmapped}, nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return out, nil
}

// Mapped reports whether Data is backed by mmap.
func (f *File) Mapped() bool {
	return f != nil && f.mmapped
}

// Size returns the model size in bytes.
func (f *File) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Data)
}

// Body returns the bytes following the sanity header. The caller must not
// retain the slice after Close.
func (f *File) Body() []byte {
	if f == nil || len(f.Data) < SanityHeaderSize {
		return nil
	}
	return f.Data[SanityHeaderSize:]
}

// Close releases the mapping, if any.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.mmapped = false
	return err
}
