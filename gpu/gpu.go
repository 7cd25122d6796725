// Package gpu is a placeholder kernel.Backend. It exists to prove
// kernel.Backend is a real interface with more than one conceivable
// implementation, not to run anything on a GPU — no device is opened and
// every method returns ErrNotImplemented.
package gpu

import (
	"errors"

	"github.com/itohio/tensorgraph/kernel"
	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/ops"
)

// ErrNotImplemented is returned by every Backend method.
var ErrNotImplemented = errors.New("gpu: backend not implemented")

// Backend is the placeholder GPU kernel.Backend implementation.
type Backend struct{}

var _ kernel.Backend = Backend{}

func (Backend) Binary(tag ops.Tag, dst []float64, dstLayout layout.Layout, srcBuf []float64, srcLayout layout.Layout) error {
	return ErrNotImplemented
}

func (Backend) Scalar(s ops.Scalar, buf []float64, l layout.Layout) error {
	return ErrNotImplemented
}

func (Backend) Chain(chain []ops.Scalar, buf []float64, l layout.Layout) error {
	return ErrNotImplemented
}
