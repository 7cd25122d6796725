package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/tensorgraph/storage"
)

func TestNewScalarFillsEveryElement(t *testing.T) {
	s := storage.NewScalar(7, 4)
	s.WithRead(func(buf []float64) {
		assert.Equal(t, []float64{7, 7, 7, 7}, buf)
	})
}

func TestNewZerosFillsWithZero(t *testing.T) {
	s := storage.NewZeros(3)
	s.WithRead(func(buf []float64) {
		assert.Equal(t, []float64{0, 0, 0}, buf)
	})
}

func TestCloneReferenceSharesBufferAndBreaksUniqueness(t *testing.T) {
	s := storage.New([]float64{1, 2, 3})
	assert.True(t, s.Unique())

	shared := s.CloneReference()
	assert.True(t, storage.SameBuffer(s, shared))
	assert.False(t, s.Unique())
	assert.False(t, shared.Unique())

	shared.Release()
	assert.True(t, s.Unique())
}

func TestCloneValueIsIndependentBuffer(t *testing.T) {
	s := storage.New([]float64{1, 2, 3})
	cp := s.CloneValue()

	assert.False(t, storage.SameBuffer(s, cp))
	assert.True(t, cp.Unique())

	cp.WithWrite(func(buf []float64) { buf[0] = 99 })
	s.WithRead(func(buf []float64) {
		assert.Equal(t, 1.0, buf[0])
	})
}

func TestWithWriteMutatesInPlace(t *testing.T) {
	s := storage.New([]float64{1, 2, 3})
	s.WithWrite(func(buf []float64) { buf[1] = 42 })
	s.WithRead(func(buf []float64) {
		assert.Equal(t, 42.0, buf[1])
	})
}

func TestLenReportsBufferSize(t *testing.T) {
	s := storage.New(make([]float64, 5))
	assert.Equal(t, 5, s.Len())
}
