// The mdx-stat command displays stats for an MDX model.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/mdlxkit/mdlx"
	"github.com/mdlxkit/mdlx/anim"
	"github.com/mdlxkit/mdlx/mdx"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

const usage = `usage: mdx-stat [FLAGS] [INPUT] [OUTPUT]

Reads an MDX file, packed or not, from INPUT, and writes to OUTPUT statistics
for the file.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.

FLAGS:
	-yaml      Write YAML instead of JSON.
	-spew      Write the decoded model as a Go value instead of statistics.
	-charmap   Character map used to decode names (default "Windows 1252").
	-raw       Keep names as raw bytes.
	-sample    Include the pose of each node at the given time.
	-sequence  Sequence index to sample (-1 for none).
	-frame     Frame to sample.
	-counter   Global sequence counter to sample.
`

type Stats struct {
	// BLAKE2b-256 digest of the input, in hex.
	Digest string

	// Binary format data.
	Format mdx.DecoderStats

	Version uint32
	Name    string

	// Number of nodes overall.
	NodeCount int

	// Number of records per kind.
	RecordCount map[string]int

	// Number of nodes per type flag.
	NodeTypeCount map[string]int

	// Number of track sets per property.
	PropertyCount map[string]int

	// Number of track sets per interpolation.
	InterpolationCount map[string]int

	// Number of track sets driven by a global sequence.
	GlobalTrackCount int

	// Number of keys overall.
	KeyCount int

	Samples []Sample `json:",omitempty" yaml:",omitempty"`
}

// Sample is the pose of a node at a point in time.
type Sample struct {
	Node        string
	Translation string
	Rotation    string
	Scaling     string
	// Pivot is the pivot point of the node after applying the world
	// transform.
	Pivot [3]float32
}

var nodeTypes = []struct {
	Name string
	Flag mdlx.NodeFlags
}{
	{"Bone", mdlx.NodeBone},
	{"Light", mdlx.NodeLight},
	{"EventObject", mdlx.NodeEventObject},
	{"Attachment", mdlx.NodeAttachment},
	{"ParticleEmitter", mdlx.NodeParticleEmitter},
	{"CollisionShape", mdlx.NodeCollisionShape},
	{"RibbonEmitter", mdlx.NodeRibbonEmitter},
}

func (s *Stats) Fill(m *mdlx.Model) {
	if m == nil {
		return
	}

	s.Version = m.Version
	s.Name = m.Info.Name
	s.NodeCount = len(m.Nodes)

	var layers int
	for _, mat := range m.Materials {
		layers += len(mat.Layers)
	}
	s.RecordCount = map[string]int{
		"Sequence":         len(m.Sequences),
		"GlobalSequence":   len(m.GlobalSequences),
		"Texture":          len(m.Textures),
		"Material":         len(m.Materials),
		"Layer":            layers,
		"TextureAnimation": len(m.TextureAnimations),
		"Geoset":           len(m.Geosets),
		"GeosetAnimation":  len(m.GeosetAnimations),
		"Bone":             len(m.Bones),
		"Light":            len(m.Lights),
		"Helper":           len(m.Helpers),
		"Attachment":       len(m.Attachments),
		"PivotPoint":       len(m.PivotPoints),
		"ParticleEmitter":  len(m.ParticleEmitters),
		"ParticleEmitter2": len(m.ParticleEmitters2),
		"RibbonEmitter":    len(m.RibbonEmitters),
		"EventObject":      len(m.EventObjects),
		"Camera":           len(m.Cameras),
		"CollisionShape":   len(m.CollisionShapes),
	}

	s.NodeTypeCount = map[string]int{}
	for _, node := range m.Nodes {
		if node.Flags.Helper() {
			s.NodeTypeCount["Helper"]++
			continue
		}
		for _, t := range nodeTypes {
			if node.Flags.Has(t.Flag) {
				s.NodeTypeCount[t.Name]++
			}
		}
	}

	s.PropertyCount = map[string]int{}
	s.InterpolationCount = map[string]int{}
	s.GlobalTrackCount = 0
	s.KeyCount = 0
	m.TrackSets(func(owner string, index int, set *mdlx.TrackSet) bool {
		s.PropertyCount[set.Property.String()]++
		s.InterpolationCount[set.Interpolation.String()]++
		if set.GlobalSequenceID != -1 {
			s.GlobalTrackCount++
		}
		s.KeyCount += len(set.Tracks)
		return true
	})
}

// Sample fills s.Samples with the pose of every node.
func (s *Stats) Sample(m *mdlx.Model, sequence int, frame int32, counter uint64) error {
	if m == nil {
		return nil
	}
	sk, err := anim.NewSkeleton(m)
	if err != nil {
		return errors.Wrap(err, "bind nodes")
	}
	sk.Update(sequence, frame, counter)
	s.Samples = make([]Sample, len(m.Nodes))
	for i := range m.Nodes {
		bound, err := anim.BindAll(m.Nodes[i].Tracks, m)
		if err != nil {
			return errors.Wrapf(err, "bind node %d", i)
		}
		t := bound.ValueAt(mdlx.PropertyTranslation, sequence, frame, counter)
		r := bound.ValueAt(mdlx.PropertyRotation, sequence, frame, counter)
		sc := bound.ValueAt(mdlx.PropertyScaling, sequence, frame, counter)
		index := mdlx.NodeIndex(i)
		s.Samples[i] = Sample{
			Node:        m.Nodes[i].Name,
			Translation: t.Format(mdlx.KindVector3),
			Rotation:    r.Format(mdlx.KindQuaternion),
			Scaling:     sc.Format(mdlx.KindVector3),
			Pivot:       sk.Transform(index, m.Pivot(index)),
		}
	}
	return nil
}

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	asYAML := flag.Bool("yaml", false, "")
	asSpew := flag.Bool("spew", false, "")
	charmapName := flag.String("charmap", "Windows 1252", "")
	raw := flag.Bool("raw", false, "")
	sample := flag.Bool("sample", false, "")
	sequence := flag.Int("sequence", 0, "")
	frame := flag.Int("frame", 0, "")
	counter := flag.Uint64("counter", 0, "")

	flag.Usage = func() { fmt.Fprintf(flag.CommandLine.Output(), usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) >= 1 && args[0] != "-" {
		in, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "open input"))
			return
		}
		input = in
		defer in.Close()
	}
	if len(args) >= 2 && args[1] != "-" {
		out, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "create output"))
			return
		}
		defer out.Close()
		defer func() {
			err := out.Sync()
			if err != nil {
				fmt.Fprintln(os.Stderr, errors.Wrap(err, "sync output"))
				return
			}
		}()
		output = out
	}

	cm, err := mdx.LookupCharmap(*charmapName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	buf, err := io.ReadAll(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "read input"))
		return
	}

	var stats Stats
	digest := blake2b.Sum256(buf)
	stats.Digest = hex.EncodeToString(digest[:])

	dec := mdx.Decoder{Charmap: cm, KeepRawNames: *raw, Stats: &stats.Format}
	model, warn, err := dec.Decode(buf)
	if warn != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(warn, "decode warning"))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "decode error"))
	}

	if *asSpew {
		cfg := spew.NewDefaultConfig()
		cfg.DisableCapacities = true
		cfg.DisablePointerAddresses = true
		cfg.SortKeys = true
		cfg.Fdump(output, model)
		return
	}

	stats.Fill(model)
	if *sample {
		if err := stats.Sample(model, *sequence, int32(*frame), *counter); err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "sample error"))
		}
	}

	if *asYAML {
		ye := yaml.NewEncoder(output)
		ye.SetIndent(2)
		if err := ye.Encode(stats); err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "write error"))
		}
		if err := ye.Close(); err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "write error"))
		}
		return
	}

	je := json.NewEncoder(output)
	je.SetEscapeHTML(false)
	je.SetIndent("", "\t")
	if err := je.Encode(stats); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "write error"))
	}
}
