// Package anim evaluates the track sets of an mdlx.Model over time.
//
// A TrackSet is bound to the sequences of its model with Bind, producing an
// SD. The SD answers the value of the property for a sequence and frame, or,
// when the set is driven by a global sequence, for an ever increasing
// counter. SDs are read-only after binding and may be queried concurrently.
package anim

import (
	"sort"

	"github.com/mdlxkit/mdlx"
)

// NoSequence selects no sequence. Sets not driven by a global sequence
// evaluate to their default value.
const NoSequence = -1

// SD is a track set bound to the sequence tables of a model.
type SD struct {
	set    *mdlx.TrackSet
	frames []int64

	sequences []mdlx.Sequence

	// global is whether the set follows a global sequence of the given
	// duration.
	global   bool
	duration uint32

	interp kernel
}

// Bind binds a track set to the sequences of m. It fails if the set refers to
// a global sequence m does not have. Bind returns nil for a nil set.
func Bind(set *mdlx.TrackSet, m *mdlx.Model) (*SD, error) {
	if set == nil {
		return nil, nil
	}
	sd := &SD{
		set:       set,
		frames:    make([]int64, len(set.Tracks)),
		sequences: m.Sequences,
		interp:    selectKernel(set.Kind, set.Interpolation),
	}
	for i, track := range set.Tracks {
		sd.frames[i] = int64(track.Frame)
	}
	if id := set.GlobalSequenceID; id != -1 {
		if id < 0 || int(id) >= len(m.GlobalSequences) {
			return nil, GlobalSequenceError{ID: id, Count: len(m.GlobalSequences)}
		}
		sd.global = true
		sd.duration = m.GlobalSequences[id]
	}
	return sd, nil
}

// TrackSet returns the bound track set.
func (sd *SD) TrackSet() *mdlx.TrackSet {
	return sd.set
}

// Global returns whether the set is driven by a global sequence, and the
// duration of that sequence.
func (sd *SD) Global() (duration uint32, ok bool) {
	return sd.duration, sd.global
}

// ValueAt returns the value of the property.
//
// If the set is driven by a global sequence, the value is taken at counter
// modulo the duration of the global sequence, and sequence and frame are
// ignored. Otherwise, the value is taken at frame within the interval of
// sequence. If sequence does not name a sequence of the model, the default
// value is returned.
func (sd *SD) ValueAt(sequence int, frame int32, counter uint64) mdlx.Value {
	if sd.global {
		var f int64
		if sd.duration > 0 {
			f = int64(counter % uint64(sd.duration))
		}
		return sd.valueIn(f, 0, int64(sd.duration))
	}
	if sequence >= 0 && sequence < len(sd.sequences) {
		interval := sd.sequences[sequence].Interval
		return sd.valueIn(int64(frame), int64(interval[0]), int64(interval[1]))
	}
	return sd.set.Default
}

// bracket returns the last key at or before frame and the first key at or
// after it. A key outside of [start, end] is reported as absent (-1).
func (sd *SD) bracket(frame, start, end int64) (a, b int) {
	n := len(sd.frames)
	b = sort.Search(n, func(i int) bool { return sd.frames[i] >= frame })
	a = sort.Search(n, func(i int) bool { return sd.frames[i] > frame }) - 1
	if a >= 0 && sd.frames[a] < start {
		a = -1
	}
	if b >= n || sd.frames[b] > end {
		b = -1
	}
	return a, b
}

func (sd *SD) valueIn(frame, start, end int64) mdlx.Value {
	a, b := sd.bracket(frame, start, end)
	tracks := sd.set.Tracks
	switch {
	case a < 0 && b < 0:
		return sd.set.Default
	case a < 0:
		return tracks[b].Value
	case b < 0:
		return tracks[a].Value
	}
	ka, kb := &tracks[a], &tracks[b]
	if sd.frames[a] >= sd.frames[b] {
		return ka.Value
	}
	t := float32(frame-sd.frames[a]) / float32(sd.frames[b]-sd.frames[a])
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return sd.interp(&ka.Value, &ka.OutTan, &kb.InTan, &kb.Value, t)
}

// Sample returns the value of sd, or def if sd is nil.
func Sample(sd *SD, sequence int, frame int32, counter uint64, def mdlx.Value) mdlx.Value {
	if sd == nil {
		return def
	}
	return sd.ValueAt(sequence, frame, counter)
}

// Set holds the bound track sets of one record.
type Set map[mdlx.Property]*SD

// BindAll binds every set of a record.
func BindAll(sets mdlx.TrackSets, m *mdlx.Model) (Set, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	bound := make(Set, len(sets))
	for p, set := range sets {
		sd, err := Bind(set, m)
		if err != nil {
			return nil, err
		}
		if sd != nil {
			bound[p] = sd
		}
	}
	return bound, nil
}

// ValueAt returns the value of a property, or the default of the property if
// it is not animated.
func (s Set) ValueAt(p mdlx.Property, sequence int, frame int32, counter uint64) mdlx.Value {
	return Sample(s[p], sequence, frame, counter, p.Default())
}
