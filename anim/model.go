package anim

import (
	"github.com/mdlxkit/mdlx"
)

// Model holds the bound track sets of every record of a model, indexed the
// same way as the records of the model.
type Model struct {
	Nodes             []Set
	Layers            [][]Set
	TextureAnimations []Set
	GeosetAnimations  []Set
	Lights            []Set
	Attachments       []Set
	ParticleEmitters  []Set
	ParticleEmitters2 []Set
	RibbonEmitters    []Set
	Cameras           []Set
}

// BindModel binds every track set of m. It fails on the first set that
// refers to a missing global sequence. A failing layer is reported as an
// OwnerError for the layer wrapped in an OwnerError for its material.
func BindModel(m *mdlx.Model) (*Model, error) {
	b := &Model{}
	var err error
	bindEach := func(owner string, n int, sets func(i int) mdlx.TrackSets) []Set {
		if err != nil {
			return nil
		}
		bound := make([]Set, n)
		for i := range bound {
			var e error
			if bound[i], e = BindAll(sets(i), m); e != nil {
				err = OwnerError{Owner: owner, Index: i, Cause: e}
				return nil
			}
		}
		return bound
	}

	b.Nodes = bindEach("node", len(m.Nodes), func(i int) mdlx.TrackSets { return m.Nodes[i].Tracks })
	if err != nil {
		return nil, err
	}
	b.Layers = make([][]Set, len(m.Materials))
	for i := range m.Materials {
		layers := m.Materials[i].Layers
		b.Layers[i] = bindEach("layer", len(layers), func(j int) mdlx.TrackSets { return layers[j].Tracks })
		if err != nil {
			return nil, OwnerError{Owner: "material", Index: i, Cause: err}
		}
	}
	b.TextureAnimations = bindEach("texture animation", len(m.TextureAnimations), func(i int) mdlx.TrackSets { return m.TextureAnimations[i].Tracks })
	b.GeosetAnimations = bindEach("geoset animation", len(m.GeosetAnimations), func(i int) mdlx.TrackSets { return m.GeosetAnimations[i].Tracks })
	b.Lights = bindEach("light", len(m.Lights), func(i int) mdlx.TrackSets { return m.Lights[i].Tracks })
	b.Attachments = bindEach("attachment", len(m.Attachments), func(i int) mdlx.TrackSets { return m.Attachments[i].Tracks })
	b.ParticleEmitters = bindEach("particle emitter", len(m.ParticleEmitters), func(i int) mdlx.TrackSets { return m.ParticleEmitters[i].Tracks })
	b.ParticleEmitters2 = bindEach("particle emitter 2", len(m.ParticleEmitters2), func(i int) mdlx.TrackSets { return m.ParticleEmitters2[i].Tracks })
	b.RibbonEmitters = bindEach("ribbon emitter", len(m.RibbonEmitters), func(i int) mdlx.TrackSets { return m.RibbonEmitters[i].Tracks })
	b.Cameras = bindEach("camera", len(m.Cameras), func(i int) mdlx.TrackSets { return m.Cameras[i].Tracks })
	if err != nil {
		return nil, err
	}
	return b, nil
}
