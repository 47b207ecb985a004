package lmbin

import "io"

// WriteSanityHeader writes the reference header to w.
func WriteSanityHeader(w io.Writer) error {
	b := ReferenceBytes()
	_, err := w.Write(b[:])
	return err
}
