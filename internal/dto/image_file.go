package dto

import "io"

// ImageFile is one uploaded file; Open is called once, right before it is stored.
type ImageFile struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}
