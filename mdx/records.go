package mdx

import (
	"github.com/mdlxkit/mdlx"
	"github.com/mdlxkit/mdlx/errors"
)

// Fixed sizes of the records of count chunks.
const (
	sequenceSize       = 132
	globalSequenceSize = 4
	textureSize        = 268
	pivotPointSize     = 12
)

var tagLayers = MakeTag("LAYS")

// sizedRecords calls decode until the inclusive sizes of the decoded records
// add up to the size of r. decode receives the index of the record, and
// returns its inclusive size.
func (d *decodeState) sizedRecords(r *reader, decode func(i int) (inclusive int64, err error)) error {
	size := int64(len(r.buf))
	var total int64
	n := 0
	for ; total < size; n++ {
		start := r.Offset()
		inclusive, err := decode(n)
		if err != nil {
			if errors.Is(err, ErrUnexpectedEnd) && !errors.Is(err, ErrChunkSizeMismatch) {
				err = ChunkSizeError{Declared: size, Consumed: total + r.Offset() - start}
			}
			return decodeError(r, indexError{Index: n, Cause: err})
		}
		total += inclusive
	}
	d.records(n)
	if total != size {
		return decodeError(r, ChunkSizeError{Declared: size, Consumed: total})
	}
	return nil
}

// countRecords returns the number of records of a count chunk, each of a
// fixed size.
func (d *decodeState) countRecords(r *reader, size int) (int, error) {
	n := len(r.buf)
	if n%size != 0 {
		return 0, ChunkSizeError{Declared: int64(n), Consumed: int64(n - n%size)}
	}
	d.records(n / size)
	return n / size, nil
}

// fit checks the bytes consumed since start against the inclusive size of a
// record. Unread bytes are skipped with a warning.
func (d *decodeState) fit(r *reader, start int64, inclusive uint32) error {
	consumed := r.Offset() - start
	switch {
	case consumed > int64(inclusive):
		return ChunkSizeError{Declared: int64(inclusive), Consumed: consumed}
	case consumed < int64(inclusive):
		if r.Skip(int(int64(inclusive) - consumed)) {
			return r.Err()
		}
		d.warn(DataError{Offset: start, Cause: ErrRecordPadding})
	}
	return nil
}

func decodeVersion(d *decodeState, r *reader) error {
	if r.Number(&d.model.Version) {
		return r.Err()
	}
	d.records(1)
	return nil
}

func decodeModelInfo(d *decodeState, r *reader) error {
	var info mdlx.ModelInfo
	if r.String(80, &info.Name) ||
		r.String(260, &info.AnimationPath) ||
		r.Number(&info.Extent) ||
		r.Number(&info.BlendTime) {
		return r.Err()
	}
	d.model.Info = info
	d.records(1)
	return nil
}

func decodeSequences(d *decodeState, r *reader) error {
	n, err := d.countRecords(r, sequenceSize)
	if err != nil {
		return err
	}
	d.model.Sequences = make([]mdlx.Sequence, n)
	for i := range d.model.Sequences {
		s := &d.model.Sequences[i]
		if r.String(80, &s.Name) ||
			r.Number(&s.Interval) ||
			r.Number(&s.MoveSpeed) ||
			r.Number(&s.Flags) ||
			r.Number(&s.Rarity) ||
			r.Number(&s.SyncPoint) ||
			r.Number(&s.Extent) {
			return indexError{Index: i, Cause: r.Err()}
		}
	}
	return nil
}

func decodeGlobalSequences(d *decodeState, r *reader) error {
	n, err := d.countRecords(r, globalSequenceSize)
	if err != nil {
		return err
	}
	if r.Uint32s(uint32(n), &d.model.GlobalSequences) {
		return r.Err()
	}
	return nil
}

func decodeTextures(d *decodeState, r *reader) error {
	n, err := d.countRecords(r, textureSize)
	if err != nil {
		return err
	}
	d.model.Textures = make([]mdlx.Texture, n)
	for i := range d.model.Textures {
		t := &d.model.Textures[i]
		if r.Number(&t.ReplaceableID) ||
			r.String(260, &t.Path) ||
			r.Number(&t.Flags) {
			return indexError{Index: i, Cause: r.Err()}
		}
	}
	return nil
}

func decodePivotPoints(d *decodeState, r *reader) error {
	n, err := d.countRecords(r, pivotPointSize)
	if err != nil {
		return err
	}
	if r.Vectors3(uint32(n), &d.model.PivotPoints) {
		return r.Err()
	}
	return nil
}

func decodeMaterials(d *decodeState, r *reader) error {
	d.model.Materials = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive, count uint32
		var m mdlx.Material
		if r.Number(&inclusive) ||
			r.Number(&m.PriorityPlane) ||
			r.Number(&m.Flags) ||
			r.Expect(tagLayers) ||
			r.Number(&count) {
			return 0, r.Err()
		}
		for j := uint32(0); j < count; j++ {
			layer, err := d.decodeLayer(r)
			if err != nil {
				return 0, indexError{Index: int(j), Cause: err}
			}
			m.Layers = append(m.Layers, layer)
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.Materials = append(d.model.Materials, m)
		return int64(inclusive), nil
	})
}

func (d *decodeState) decodeLayer(r *reader) (layer mdlx.Layer, err error) {
	start := r.Offset()
	var inclusive uint32
	if r.Number(&inclusive) ||
		r.Number(&layer.FilterMode) ||
		r.Number(&layer.ShadingFlags) ||
		r.Number(&layer.TextureID) ||
		r.Number(&layer.TextureAnimationID) ||
		r.Number(&layer.CoordID) ||
		r.Number(&layer.Alpha) {
		return layer, r.Err()
	}
	if layer.Tracks, err = d.decodeTracks(r, ownerLayer, start+int64(inclusive)); err != nil {
		return layer, err
	}
	return layer, d.fit(r, start, inclusive)
}

func decodeTextureAnimations(d *decodeState, r *reader) error {
	d.model.TextureAnimations = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive uint32
		if r.Number(&inclusive) {
			return 0, r.Err()
		}
		tracks, err := d.decodeTracks(r, ownerTextureAnimation, start+int64(inclusive))
		if err != nil {
			return 0, err
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.TextureAnimations = append(d.model.TextureAnimations, mdlx.TextureAnimation{Tracks: tracks})
		return int64(inclusive), nil
	})
}

func decodeGeosetAnimations(d *decodeState, r *reader) error {
	d.model.GeosetAnimations = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive uint32
		var a mdlx.GeosetAnimation
		if r.Number(&inclusive) ||
			r.Number(&a.Alpha) ||
			r.Number(&a.Flags) ||
			r.Number(&a.Color) ||
			r.Number(&a.GeosetID) {
			return 0, r.Err()
		}
		var err error
		if a.Tracks, err = d.decodeTracks(r, ownerGeosetAnimation, start+int64(inclusive)); err != nil {
			return 0, err
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.GeosetAnimations = append(d.model.GeosetAnimations, a)
		return int64(inclusive), nil
	})
}

func decodeLights(d *decodeState, r *reader) error {
	d.model.Lights = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive uint32
		if r.Number(&inclusive) {
			return 0, r.Err()
		}
		var l mdlx.Light
		var err error
		if l.Node, _, err = d.decodeNode(r); err != nil {
			return 0, err
		}
		if r.Number(&l.Type) ||
			r.Number(&l.AttenuationStart) ||
			r.Number(&l.AttenuationEnd) ||
			r.Number(&l.Color) ||
			r.Number(&l.Intensity) ||
			r.Number(&l.AmbientColor) ||
			r.Number(&l.AmbientIntensity) {
			return 0, r.Err()
		}
		if l.Tracks, err = d.decodeTracks(r, ownerLight, start+int64(inclusive)); err != nil {
			return 0, err
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.Lights = append(d.model.Lights, l)
		return int64(inclusive), nil
	})
}

func decodeAttachments(d *decodeState, r *reader) error {
	d.model.Attachments = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive uint32
		if r.Number(&inclusive) {
			return 0, r.Err()
		}
		var a mdlx.Attachment
		var err error
		if a.Node, _, err = d.decodeNode(r); err != nil {
			return 0, err
		}
		if r.String(260, &a.Path) || r.Number(&a.AttachmentID) {
			return 0, r.Err()
		}
		if a.Tracks, err = d.decodeTracks(r, ownerAttachment, start+int64(inclusive)); err != nil {
			return 0, err
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.Attachments = append(d.model.Attachments, a)
		return int64(inclusive), nil
	})
}

func decodeParticleEmitters(d *decodeState, r *reader) error {
	d.model.ParticleEmitters = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive uint32
		if r.Number(&inclusive) {
			return 0, r.Err()
		}
		var e mdlx.ParticleEmitter
		var err error
		if e.Node, _, err = d.decodeNode(r); err != nil {
			return 0, err
		}
		if r.Number(&e.EmissionRate) ||
			r.Number(&e.Gravity) ||
			r.Number(&e.Longitude) ||
			r.Number(&e.Latitude) ||
			r.String(260, &e.SpawnModelPath) ||
			r.Number(&e.Lifespan) ||
			r.Number(&e.InitialVelocity) {
			return 0, r.Err()
		}
		if e.Tracks, err = d.decodeTracks(r, ownerParticleEmitter, start+int64(inclusive)); err != nil {
			return 0, err
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.ParticleEmitters = append(d.model.ParticleEmitters, e)
		return int64(inclusive), nil
	})
}

// particleEmitter2Fields is the fixed part of a ParticleEmitter2 record that
// follows its node.
type particleEmitter2Fields struct {
	Speed             float32
	Variation         float32
	Latitude          float32
	Gravity           float32
	Lifespan          float32
	EmissionRate      float32
	Width             float32
	Length            float32
	FilterMode        uint32
	Rows              uint32
	Columns           uint32
	HeadOrTail        uint32
	TailLength        float32
	TimeMiddle        float32
	SegmentColor      [3][3]float32
	SegmentAlpha      [3]uint8
	SegmentScaling    [3]float32
	HeadInterval      [3]uint32
	HeadDecayInterval [3]uint32
	TailInterval      [3]uint32
	TailDecayInterval [3]uint32
	TextureID         uint32
	Squirt            uint32
	PriorityPlane     uint32
	ReplaceableID     uint32
}

func decodeParticleEmitters2(d *decodeState, r *reader) error {
	d.model.ParticleEmitters2 = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive uint32
		if r.Number(&inclusive) {
			return 0, r.Err()
		}
		node, _, err := d.decodeNode(r)
		if err != nil {
			return 0, err
		}
		var f particleEmitter2Fields
		if r.Number(&f) {
			return 0, r.Err()
		}
		e := mdlx.ParticleEmitter2{
			Node:              node,
			Speed:             f.Speed,
			Variation:         f.Variation,
			Latitude:          f.Latitude,
			Gravity:           f.Gravity,
			Lifespan:          f.Lifespan,
			EmissionRate:      f.EmissionRate,
			Width:             f.Width,
			Length:            f.Length,
			FilterMode:        mdlx.FilterMode(f.FilterMode),
			Rows:              f.Rows,
			Columns:           f.Columns,
			HeadOrTail:        f.HeadOrTail,
			TailLength:        f.TailLength,
			TimeMiddle:        f.TimeMiddle,
			SegmentColor:      f.SegmentColor,
			SegmentAlpha:      f.SegmentAlpha,
			SegmentScaling:    f.SegmentScaling,
			HeadInterval:      f.HeadInterval,
			HeadDecayInterval: f.HeadDecayInterval,
			TailInterval:      f.TailInterval,
			TailDecayInterval: f.TailDecayInterval,
			TextureID:         f.TextureID,
			Squirt:            f.Squirt,
			PriorityPlane:     f.PriorityPlane,
			ReplaceableID:     f.ReplaceableID,
		}
		if e.Tracks, err = d.decodeTracks(r, ownerParticleEmitter2, start+int64(inclusive)); err != nil {
			return 0, err
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.ParticleEmitters2 = append(d.model.ParticleEmitters2, e)
		return int64(inclusive), nil
	})
}

// ribbonEmitterFields is the fixed part of a RibbonEmitter record that
// follows its node.
type ribbonEmitterFields struct {
	HeightAbove  float32
	HeightBelow  float32
	Alpha        float32
	Color        [3]float32
	Lifespan     float32
	TextureSlot  uint32
	EmissionRate uint32
	Rows         uint32
	Columns      uint32
	MaterialID   uint32
	Gravity      float32
}

func decodeRibbonEmitters(d *decodeState, r *reader) error {
	d.model.RibbonEmitters = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive uint32
		if r.Number(&inclusive) {
			return 0, r.Err()
		}
		node, _, err := d.decodeNode(r)
		if err != nil {
			return 0, err
		}
		var f ribbonEmitterFields
		if r.Number(&f) {
			return 0, r.Err()
		}
		e := mdlx.RibbonEmitter{
			Node:         node,
			HeightAbove:  f.HeightAbove,
			HeightBelow:  f.HeightBelow,
			Alpha:        f.Alpha,
			Color:        f.Color,
			Lifespan:     f.Lifespan,
			TextureSlot:  f.TextureSlot,
			EmissionRate: f.EmissionRate,
			Rows:         f.Rows,
			Columns:      f.Columns,
			MaterialID:   f.MaterialID,
			Gravity:      f.Gravity,
		}
		if e.Tracks, err = d.decodeTracks(r, ownerRibbonEmitter, start+int64(inclusive)); err != nil {
			return 0, err
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.RibbonEmitters = append(d.model.RibbonEmitters, e)
		return int64(inclusive), nil
	})
}

func decodeCameras(d *decodeState, r *reader) error {
	d.model.Cameras = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive uint32
		var c mdlx.Camera
		if r.Number(&inclusive) ||
			r.String(80, &c.Name) ||
			r.Number(&c.Position) ||
			r.Number(&c.FieldOfView) ||
			r.Number(&c.FarClippingPlane) ||
			r.Number(&c.NearClippingPlane) ||
			r.Number(&c.TargetPosition) {
			return 0, r.Err()
		}
		var err error
		if c.Tracks, err = d.decodeTracks(r, ownerCamera, start+int64(inclusive)); err != nil {
			return 0, err
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.Cameras = append(d.model.Cameras, c)
		return int64(inclusive), nil
	})
}
