package mdlx

// Track is a single keyframe.
type Track struct {
	Frame int32
	Value Value

	// InTan and OutTan are set only when the owning track set's
	// interpolation has tangents.
	InTan  Value
	OutTan Value
}

// TrackSet holds every keyframe for one animatable property of a record.
type TrackSet struct {
	// Tag is the four byte tag the set was decoded from, such as "KGTR".
	Tag [4]byte

	Property      Property
	Kind          Kind
	Interpolation Interpolation

	// GlobalSequenceID is the index of the global sequence driving the set,
	// or -1 if the set follows the active sequence.
	GlobalSequenceID int32

	// Tracks is ordered by Frame as found in the source. Decoders warn when
	// frames are not ascending.
	Tracks []Track

	// Default is the value used when no keyframe applies.
	Default Value
}

// NewTrackSet returns an empty track set for a property, with the kind and
// default value of the property.
func NewTrackSet(p Property, interp Interpolation, globalSequenceID int32) *TrackSet {
	return &TrackSet{
		Property:         p,
		Kind:             p.Kind(),
		Interpolation:    interp,
		GlobalSequenceID: globalSequenceID,
		Default:          p.Default(),
	}
}

// Sorted returns whether the frames of the set are in ascending order.
func (s *TrackSet) Sorted() bool {
	for i := 1; i < len(s.Tracks); i++ {
		if s.Tracks[i].Frame < s.Tracks[i-1].Frame {
			return false
		}
	}
	return true
}

// TrackSets maps an animatable property to its keyframes.
type TrackSets map[Property]*TrackSet

// Get returns the set for a property, or nil if the property is not
// animated.
func (t TrackSets) Get(p Property) *TrackSet {
	if t == nil {
		return nil
	}
	return t[p]
}
