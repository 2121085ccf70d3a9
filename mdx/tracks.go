package mdx

import (
	"github.com/mdlxkit/mdlx"
)

// owner identifies the kind of record a run of track sets belongs to. Each
// owner accepts its own set of track tags.
type owner int

const (
	ownerNode owner = iota
	ownerLayer
	ownerTextureAnimation
	ownerGeosetAnimation
	ownerLight
	ownerAttachment
	ownerParticleEmitter
	ownerParticleEmitter2
	ownerRibbonEmitter
	ownerCamera
	ownerCount
)

type trackTag struct {
	tag      Tag
	property mdlx.Property
}

var trackTags = [ownerCount][]trackTag{
	ownerNode: {
		{MakeTag("KGTR"), mdlx.PropertyTranslation},
		{MakeTag("KGRT"), mdlx.PropertyRotation},
		{MakeTag("KGSC"), mdlx.PropertyScaling},
	},
	ownerLayer: {
		{MakeTag("KMTF"), mdlx.PropertyTextureID},
		{MakeTag("KMTA"), mdlx.PropertyAlpha},
	},
	ownerTextureAnimation: {
		{MakeTag("KTAT"), mdlx.PropertyTranslation},
		{MakeTag("KTAR"), mdlx.PropertyRotation},
		{MakeTag("KTAS"), mdlx.PropertyScaling},
	},
	ownerGeosetAnimation: {
		{MakeTag("KGAO"), mdlx.PropertyAlpha},
		{MakeTag("KGAC"), mdlx.PropertyColor},
	},
	ownerLight: {
		{MakeTag("KLAS"), mdlx.PropertyAttenuationStart},
		{MakeTag("KLAE"), mdlx.PropertyAttenuationEnd},
		{MakeTag("KLAC"), mdlx.PropertyColor},
		{MakeTag("KLAI"), mdlx.PropertyIntensity},
		{MakeTag("KLBI"), mdlx.PropertyAmbientIntensity},
		{MakeTag("KLBC"), mdlx.PropertyAmbientColor},
		{MakeTag("KLAV"), mdlx.PropertyVisibility},
	},
	ownerAttachment: {
		{MakeTag("KATV"), mdlx.PropertyVisibility},
	},
	ownerParticleEmitter: {
		{MakeTag("KPEE"), mdlx.PropertyEmissionRate},
		{MakeTag("KPEG"), mdlx.PropertyGravity},
		{MakeTag("KPLN"), mdlx.PropertyLongitude},
		{MakeTag("KPLT"), mdlx.PropertyLatitude},
		{MakeTag("KPEL"), mdlx.PropertyLifespan},
		{MakeTag("KPES"), mdlx.PropertySpeed},
		{MakeTag("KPEV"), mdlx.PropertyVisibility},
	},
	ownerParticleEmitter2: {
		{MakeTag("KP2S"), mdlx.PropertySpeed},
		{MakeTag("KP2R"), mdlx.PropertyVariation},
		{MakeTag("KP2L"), mdlx.PropertyLatitude},
		{MakeTag("KP2G"), mdlx.PropertyGravity},
		{MakeTag("KP2E"), mdlx.PropertyEmissionRate},
		{MakeTag("KP2N"), mdlx.PropertyLength},
		{MakeTag("KP2W"), mdlx.PropertyWidth},
		{MakeTag("KP2V"), mdlx.PropertyVisibility},
	},
	ownerRibbonEmitter: {
		{MakeTag("KRHA"), mdlx.PropertyHeightAbove},
		{MakeTag("KRHB"), mdlx.PropertyHeightBelow},
		{MakeTag("KRAL"), mdlx.PropertyAlpha},
		{MakeTag("KRCO"), mdlx.PropertyColor},
		{MakeTag("KRTX"), mdlx.PropertyTextureSlot},
		{MakeTag("KRVS"), mdlx.PropertyVisibility},
	},
	ownerCamera: {
		{MakeTag("KCTR"), mdlx.PropertyPositionTranslation},
		{MakeTag("KTTR"), mdlx.PropertyTargetTranslation},
		{MakeTag("KCRL"), mdlx.PropertyCameraRoll},
	},
}

// property returns the property a tag animates for the owner.
func (o owner) property(tag Tag) (mdlx.Property, bool) {
	for _, t := range trackTags[o] {
		if t.tag == tag {
			return t.property, true
		}
	}
	return mdlx.PropertyInvalid, false
}

// decodeTracks decodes track sets while the next tag is legal for the owner
// and lies before end.
func (d *decodeState) decodeTracks(r *reader, o owner, end int64) (mdlx.TrackSets, error) {
	var sets mdlx.TrackSets
	for r.Offset()+4 <= end {
		p, ok := r.Peek(4)
		if !ok {
			break
		}
		var tag Tag
		copy(tag[:], p)
		prop, ok := o.property(tag)
		if !ok {
			break
		}
		r.Skip(4)

		set, err := decodeTrackSet(r, tag, prop)
		if err != nil {
			return nil, TrackError{Tag: tag, Cause: err}
		}
		if !set.Sorted() {
			d.warn(DataError{Offset: r.Offset(), Cause: TrackError{Tag: tag, Cause: ErrUnsortedTrack}})
		}
		if sets == nil {
			sets = make(mdlx.TrackSets, 1)
		}
		sets[prop] = set
	}
	return sets, nil
}

// decodeTrackSet decodes the body of a track set that follows its tag.
func decodeTrackSet(r *reader, tag Tag, prop mdlx.Property) (*mdlx.TrackSet, error) {
	var count, interp uint32
	var globalSequenceID int32
	if r.Number(&count) || r.Number(&interp) || r.Number(&globalSequenceID) {
		return nil, r.Err()
	}

	set := mdlx.NewTrackSet(prop, mdlx.Interpolation(interp), globalSequenceID)
	set.Tag = tag

	width := 4 * prop.Kind().Arity()
	size := 4 + width
	if set.Interpolation.HasTangents() {
		size += 2 * width
	}
	if r.need(int(count) * size) {
		return nil, r.Err()
	}

	set.Tracks = make([]mdlx.Track, count)
	for i := range set.Tracks {
		track := &set.Tracks[i]
		if r.Number(&track.Frame) || readValue(r, prop, &track.Value) {
			return nil, r.Err()
		}
		if set.Interpolation.HasTangents() {
			if readValue(r, prop, &track.InTan) || readValue(r, prop, &track.OutTan) {
				return nil, r.Err()
			}
		}
	}
	return set, nil
}

// readValue reads one value of a property.
func readValue(r *reader, prop mdlx.Property, v *mdlx.Value) (failed bool) {
	if prop.Integer() {
		var u uint32
		if r.Number(&u) {
			return true
		}
		v[0] = float32(u)
		return false
	}
	return r.Number(v[:prop.Kind().Arity()])
}
