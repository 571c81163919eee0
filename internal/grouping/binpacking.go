package grouping

import "fmt"

// WeightFunc reports the weight of one element.
type WeightFunc[T any] func(elem T) int64

// BinPacking redistributes elements into consecutive groups bounded by a
// total weight rather than an element count. Elements are packed first-fit
// in order: a group is closed as soon as the next element would push its
// total weight past Capacity. Succeeded entries carry no payload and weigh
// nothing.
type BinPacking[T any] struct {
	Capacity int64
	Weigh    WeightFunc[T]
}

// NewBinPacking returns a bin packing heuristic with the given capacity and
// weight function.
func NewBinPacking[T any](capacity int64, weigh WeightFunc[T]) *BinPacking[T] {
	return &BinPacking[T]{Capacity: capacity, Weigh: weigh}
}

func (b *BinPacking[T]) Distribute(dist Distribution[T]) (Distribution[T], error) {
	if b.Capacity < 1 {
		return nil, fmt.Errorf("binpacking: invalid capacity %d", b.Capacity)
	}
	if b.Weigh == nil {
		return nil, fmt.Errorf("binpacking: nil weight function")
	}

	flat := Flatten(dist)
	out := make(Distribution[T], 0, len(dist))
	var bin Group[T]
	var binWeight int64
	for _, o := range flat {
		var w int64
		switch o.kind {
		case KindApply:
			w = b.Weigh(o.elem)
		case KindFailure:
			w = b.Weigh(o.failure.elem)
		}
		if w > b.Capacity {
			return nil, fmt.Errorf(
				"binpacking: element weight %d exceeds capacity %d", w, b.Capacity,
			)
		}
		if len(bin) > 0 && binWeight+w > b.Capacity {
			out = append(out, bin)
			bin = nil
			binWeight = 0
		}
		bin = append(bin, o)
		binWeight += w
	}
	if len(bin) > 0 {
		out = append(out, bin)
	}
	return out, nil
}
