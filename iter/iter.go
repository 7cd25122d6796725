// Package iter implements the traversal state machines over a
// layout.Layout-described buffer: a plain strided walk, an "informed" walk
// that emits dimension-enter/exit/value events for consumers like
// formatters, and a chunk-packing walk that hands vectorized kernels
// fixed-size contiguous runs.
package iter

import "github.com/itohio/tensorgraph/layout"

// Strided is an explicit state machine — counter vector, flat position,
// remaining count — that visits every element of a layout in row-major
// logical order using its cached adjacent strides. It is not a recursive
// coroutine: each Next is O(1) amortized.
type Strided struct {
	buf       []float64
	shape     layout.Shape
	adjStride []int32
	counter   []int32
	pos       int
	leftOver  int
}

// NewStrided builds a Strided walk over buf using l's shape and adjacent
// strides, starting at l's offset.
func NewStrided(buf []float64, l layout.Layout) *Strided {
	return &Strided{
		buf:       buf,
		shape:     l.Shape(),
		adjStride: l.AdjStride(),
		counter:   make([]int32, l.Rank()),
		pos:       l.Offset(),
		leftOver:  l.Len(),
	}
}

// Next returns the next element and true, or (0, false) once exhausted.
func (s *Strided) Next() (float64, bool) {
	if s.leftOver == 0 {
		return 0, false
	}

	v := s.buf[s.pos]

	last := len(s.counter) - 1
	s.counter[last]++
	stepDim := last
	for d := last; d > 0; d-- {
		if s.counter[d] == s.shape[d] {
			s.counter[d] = 0
			s.counter[d-1]++
			stepDim = d - 1
			continue
		}
		break
	}

	s.pos += int(s.adjStride[stepDim])
	s.leftOver--

	return v, true
}

// Remaining reports how many elements are left to visit.
func (s *Strided) Remaining() int { return s.leftOver }

// Positions walks the same row-major logical order as Strided but yields
// absolute buffer offsets instead of dereferenced values, for callers that
// need to write through a layout rather than read it (e.g. a general,
// non-contiguous in-place binary kernel).
type Positions struct {
	s *Strided
}

// NewPositions builds a Positions walk over l (the buffer itself is never
// touched — only its shape/adj_stride/offset/len matter).
func NewPositions(l layout.Layout) *Positions {
	return &Positions{s: NewStrided(nil, l)}
}

// Next returns the next absolute offset and true, or (0, false) once
// exhausted.
func (p *Positions) Next() (int, bool) {
	if p.s.leftOver == 0 {
		return 0, false
	}
	pos := p.s.pos

	last := len(p.s.counter) - 1
	p.s.counter[last]++
	stepDim := last
	for d := last; d > 0; d-- {
		if p.s.counter[d] == p.s.shape[d] {
			p.s.counter[d] = 0
			p.s.counter[d-1]++
			stepDim = d - 1
			continue
		}
		break
	}
	p.s.pos += int(p.s.adjStride[stepDim])
	p.s.leftOver--

	return pos, true
}

// Event tags what an Informed walk step represents.
type Event uint8

const (
	EnterDimension Event = iota
	ExitDimension
	Value
	End
)

// Step is one emission of an Informed walk.
type Step struct {
	Event Event
	Dim   int     // valid for EnterDimension / ExitDimension
	Value float64 // valid for Value
}

// Informed walks a layout emitting dimension-enter/exit/value events in
// row-major order, letting a consumer (e.g. a bracket-nesting printer)
// render structure without re-deriving it from shape and counters itself.
type Informed struct {
	buf       []float64
	shape     layout.Shape
	adjStride []int32
	counter   []int32
	pos       int
	state     Step
	done      bool
}

// NewInformed builds an Informed walk over buf using l.
func NewInformed(buf []float64, l layout.Layout) *Informed {
	return &Informed{
		buf:       buf,
		shape:     l.Shape(),
		adjStride: l.AdjStride(),
		counter:   make([]int32, l.Rank()),
		pos:       l.Offset(),
		state:     Step{Event: EnterDimension, Dim: 0},
	}
}

// Next returns the next Step, or (Step{Event: End}, false) once the walk is
// exhausted.
func (it *Informed) Next() (Step, bool) {
	if it.done {
		return Step{Event: End}, false
	}

	switch it.state.Event {
	case EnterDimension:
		dim := it.state.Dim
		cur := it.state
		if dim == len(it.shape)-1 {
			it.state = Step{Event: Value, Value: it.buf[it.pos]}
		} else {
			it.state = Step{Event: EnterDimension, Dim: dim + 1}
		}
		return cur, true

	case ExitDimension:
		dim := it.state.Dim
		cur := it.state
		if dim == 0 {
			it.state = Step{Event: End}
			it.done = true
			return cur, true
		}
		it.counter[dim] = 0
		it.counter[dim-1]++
		if it.counter[dim-1] == it.shape[dim-1] {
			it.state = Step{Event: ExitDimension, Dim: dim - 1}
			return cur, true
		}
		it.pos += int(it.adjStride[dim-1])
		it.state = Step{Event: EnterDimension, Dim: dim}
		return cur, true

	case Value:
		cur := it.state
		last := len(it.counter) - 1
		if it.counter[last] == it.shape[last]-1 {
			it.counter[last] = 0
			it.state = Step{Event: ExitDimension, Dim: last}
			return cur, true
		}
		it.pos += int(it.adjStride[last])
		it.counter[last]++
		it.state = Step{Event: Value, Value: it.buf[it.pos]}
		return cur, true

	default:
		it.done = true
		return Step{Event: End}, false
	}
}

// DefaultChunkSize is the number of elements packed into one contiguous run
// by Chunked when the source is not already contiguous.
const DefaultChunkSize = 128

// Chunk is one fixed-size contiguous run materialized from a strided
// source, together with the absolute offset (in output-buffer element
// units) it corresponds to.
type Chunk struct {
	Data              []float64
	AbsoluteBufferPos int
}

// Chunked packs a strided source into fixed-size contiguous runs for
// vectorized kernels. When the source layout is already contiguous, it
// yields exactly one chunk covering the whole buffer so the kernel can run
// as a single vector call.
type Chunked struct {
	strided   *Strided
	chunkSize int
	total     int
	emitted   int
	// fast path
	contig    []float64
	isContig  bool
	done      bool
}

// NewChunked builds a chunk-packing iterator over a TensorData-shaped
// source. If l is contiguous, buf is sliced directly without copying.
func NewChunked(buf []float64, l layout.Layout, chunkSize int) *Chunked {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if l.IsContiguous() {
		start := l.Offset()
		return &Chunked{contig: buf[start : start+l.Len()], isContig: true, total: l.Len()}
	}
	return &Chunked{strided: NewStrided(buf, l), chunkSize: chunkSize, total: l.Len()}
}

// Next returns the next Chunk, or (Chunk{}, false) once the source is
// exhausted.
func (c *Chunked) Next() (Chunk, bool) {
	if c.done {
		return Chunk{}, false
	}
	if c.isContig {
		c.done = true
		if len(c.contig) == 0 {
			return Chunk{}, false
		}
		return Chunk{Data: c.contig, AbsoluteBufferPos: 0}, true
	}

	remaining := c.total - c.emitted
	if remaining <= 0 {
		c.done = true
		return Chunk{}, false
	}
	n := c.chunkSize
	if n > remaining {
		n = remaining
	}
	buf := make([]float64, n)
	for i := 0; i < n; i++ {
		v, ok := c.strided.Next()
		if !ok {
			panic("iter: chunked source exhausted before declared length")
		}
		buf[i] = v
	}
	pos := c.emitted
	c.emitted += n
	return Chunk{Data: buf, AbsoluteBufferPos: pos}, true
}
