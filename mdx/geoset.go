package mdx

import (
	"github.com/mdlxkit/mdlx"
)

// Inner tags of a geoset record, in the order they appear.
var (
	tagPositions      = MakeTag("VRTX")
	tagNormals        = MakeTag("NRMS")
	tagFaceTypeGroups = MakeTag("PTYP")
	tagFaceGroups     = MakeTag("PCNT")
	tagFaces          = MakeTag("PVTX")
	tagVertexGroups   = MakeTag("GNDX")
	tagMatrixGroups   = MakeTag("MTGC")
	tagMatrixIndices  = MakeTag("MATS")
	tagCoordSets      = MakeTag("UVAS")
	tagCoordSet       = MakeTag("UVBS")
)

const extentSize = 28

func decodeGeosets(d *decodeState, r *reader) error {
	d.model.Geosets = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		start := r.Offset()
		var inclusive uint32
		if r.Number(&inclusive) {
			return 0, r.Err()
		}
		g, err := decodeGeoset(r)
		if err != nil {
			return 0, err
		}
		if err := d.fit(r, start, inclusive); err != nil {
			return 0, err
		}
		d.model.Geosets = append(d.model.Geosets, g)
		return int64(inclusive), nil
	})
}

// decodeGeoset decodes the body of a geoset. Each array is preceded by its
// tag and element count.
func decodeGeoset(r *reader) (g mdlx.Geoset, err error) {
	var n uint32
	if r.Expect(tagPositions) || r.Number(&n) || r.Vectors3(n, &g.Positions) ||
		r.Expect(tagNormals) || r.Number(&n) || r.Vectors3(n, &g.Normals) ||
		r.Expect(tagFaceTypeGroups) || r.Number(&n) || r.Uint32s(n, &g.FaceTypeGroups) ||
		r.Expect(tagFaceGroups) || r.Number(&n) || r.Uint32s(n, &g.FaceGroups) ||
		r.Expect(tagFaces) || r.Number(&n) || r.Uint16s(n, &g.Faces) ||
		r.Expect(tagVertexGroups) || r.Number(&n) || r.Uint8s(n, &g.VertexGroups) ||
		r.Expect(tagMatrixGroups) || r.Number(&n) || r.Uint32s(n, &g.MatrixGroups) ||
		r.Expect(tagMatrixIndices) || r.Number(&n) || r.Uint32s(n, &g.MatrixIndices) {
		return g, r.Err()
	}

	if r.Number(&g.MaterialID) ||
		r.Number(&g.SelectionGroup) ||
		r.Number(&g.SelectionFlags) ||
		r.Number(&g.Extent) ||
		r.Number(&n) ||
		r.need(int(n)*extentSize) {
		return g, r.Err()
	}
	g.SequenceExtents = make([]mdlx.Extent, n)
	if r.Number(g.SequenceExtents) {
		return g, r.Err()
	}

	if r.Expect(tagCoordSets) || r.Number(&n) {
		return g, r.Err()
	}
	for i := uint32(0); i < n; i++ {
		var count uint32
		var coords [][2]float32
		if r.Expect(tagCoordSet) || r.Number(&count) || r.Vectors2(count, &coords) {
			return g, r.Err()
		}
		g.TextureCoordinateSets = append(g.TextureCoordinateSets, coords)
	}
	return g, nil
}
