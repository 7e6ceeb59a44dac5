package vm

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// DecodeString returns the NUL-terminated string stored at addr in heap. The
// terminating byte is not included.
func DecodeString(heap []byte, addr uint64) string {
	end := addr
	for end < uint64(len(heap)) && heap[end] != 0 {
		end++
	}
	return string(heap[addr:end])
}

// EncodeString writes s at addr in heap, NUL-terminated.
func EncodeString(heap []byte, addr uint64, s string) {
	copy(heap[addr:], s)
	heap[addr+uint64(len(s))] = 0
}

// LoadImage reads a raw heap snapshot from fileName into a newly allocated
// byte slice at least minSize bytes long.
func LoadImage(fileName string, minSize int) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat failed")
	}
	size := int(st.Size())
	if size < minSize {
		size = minSize
	}
	heap := make([]byte, size)
	if _, err := io.ReadFull(bufio.NewReader(f), heap[:st.Size()]); err != nil && err != io.ErrUnexpectedEOF {
		return nil, errors.Wrap(err, "read failed")
	}
	return heap, nil
}

// SaveImage writes heap verbatim to fileName.
func SaveImage(fileName string, heap []byte) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		flushErr := w.Flush()
		closeErr := f.Close()
		if err == nil {
			err = flushErr
		}
		if err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(fileName)
		}
	}()
	_, err = w.Write(heap)
	return errors.Wrap(err, "save failed")
}
