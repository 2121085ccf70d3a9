package mdx

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"unicode"

	"github.com/mdlxkit/mdlx"
	"github.com/mdlxkit/mdlx/errors"
)

// Dump writes to w a readable representation of the chunks of buf, followed
// by the node table of the decoded model.
//
// Returns ErrNotRecognized if buf is not an MDX buffer.
func (d Decoder) Dump(w io.Writer, buf []byte) (warn, err error) {
	if w == nil {
		return nil, errors.New("nil writer")
	}

	var stats DecoderStats
	d.Stats = &stats
	model, warn, err := d.Decode(buf)
	if err != nil {
		return warn, err
	}
	if model == nil {
		return warn, ErrNotRecognized
	}
	if stats.Packed {
		if buf, err = Unpack(buf); err != nil {
			return warn, err
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Version: %d", model.Version)
	fmt.Fprintf(bw, "\nPacked: %t", stats.Packed)
	fmt.Fprintf(bw, "\nSize: %d", stats.Size)
	fmt.Fprintf(bw, "\nWarnings: %d", stats.Warnings)
	fmt.Fprintf(bw, "\nChunks: (count:%d) {", len(stats.Chunks))
	for i, chunk := range stats.Chunks {
		dumpChunk(bw, 1, i, chunk, model, buf)
	}
	fmt.Fprint(bw, "\n}")
	fmt.Fprintf(bw, "\nNodes: (count:%d) {", len(model.Nodes))
	for i := range model.Nodes {
		dumpNode(bw, 1, i, &model.Nodes[i])
	}
	fmt.Fprint(bw, "\n}")

	return warn, bw.Flush()
}

func dumpChunk(w *bufio.Writer, indent, i int, chunk ChunkStat, model *mdlx.Model, buf []byte) {
	dumpNewline(w, indent)
	fmt.Fprintf(w, "#%d: ", i)
	dumpTag(w, chunk.Tag)
	fmt.Fprintf(w, " (offset:%d) (size:%d) {", chunk.Offset, chunk.Size)
	if !chunk.Known {
		dumpNewline(w, indent+1)
		w.WriteString("Unknown: ")
		end := chunk.Offset + int64(chunk.Size)
		if chunk.Offset >= 0 && end <= int64(len(buf)) {
			dumpBytes(w, indent+1, buf[chunk.Offset:end])
		}
		dumpNewline(w, indent)
		w.WriteByte('}')
		return
	}

	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Records: %d", chunk.Records)
	id, _ := lookupChunk(chunk.Tag)
	switch id {
	case chunkModel:
		dumpNewline(w, indent+1)
		w.WriteString("Name: ")
		dumpString(w, indent+1, model.Info.Name)
		dumpNewline(w, indent+1)
		w.WriteString("AnimationPath: ")
		dumpString(w, indent+1, model.Info.AnimationPath)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "BlendTime: %d", model.Info.BlendTime)
	case chunkSequences:
		for j, s := range model.Sequences {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "%d: [%d, %d] ", j, s.Interval[0], s.Interval[1])
			dumpString(w, indent+1, s.Name)
			if s.NonLooping() {
				w.WriteString(" (non-looping)")
			}
		}
	case chunkGlobalSequences:
		for j, duration := range model.GlobalSequences {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "%d: %d", j, duration)
		}
	case chunkTextures:
		for j, t := range model.Textures {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "%d: (replaceable:%d) ", j, t.ReplaceableID)
			dumpString(w, indent+1, t.Path)
		}
	case chunkMaterials:
		for j, m := range model.Materials {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "%d: (priority:%d) (layers:%d)", j, m.PriorityPlane, len(m.Layers))
		}
	case chunkGeosets:
		for j, g := range model.Geosets {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "%d: (vertices:%d) (faces:%d) (material:%d)", j, len(g.Positions), len(g.Faces), g.MaterialID)
		}
	case chunkCollisionShapes:
		for j, s := range model.CollisionShapes {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "%d: node #%d %s", j, s.Node, s.Type)
		}
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func dumpNode(w *bufio.Writer, indent, i int, node *mdlx.Node) {
	dumpNewline(w, indent)
	fmt.Fprintf(w, "#%d: (object:%d) (parent:%d) (flags:%#x) ", i, node.ObjectID, node.ParentID, uint32(node.Flags))
	dumpString(w, indent, node.Name)
	if len(node.Tracks) == 0 {
		return
	}
	w.WriteString(" {")
	props := make([]mdlx.Property, 0, len(node.Tracks))
	for p := range node.Tracks {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
	for _, p := range props {
		set := node.Tracks[p]
		dumpNewline(w, indent+1)
		dumpTag(w, set.Tag)
		fmt.Fprintf(w, " %s (%s) (keys:%d)", p, set.Interpolation, len(set.Tracks))
		if set.GlobalSequenceID >= 0 {
			fmt.Fprintf(w, " (global:%d)", set.GlobalSequenceID)
		}
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

func dumpTag(w *bufio.Writer, tag Tag) {
	w.WriteString(tag.String())
	fmt.Fprintf(w, " (% 02X)", tag[:])
}

func dumpString(w *bufio.Writer, indent int, s string) {
	for _, r := range s {
		if !unicode.IsGraphic(r) {
			dumpBytes(w, indent, []byte(s))
			return
		}
	}
	w.WriteString(strconv.Quote(s))
}

func dumpBytes(w *bufio.Writer, indent int, b []byte) {
	fmt.Fprintf(w, "(len:%d)", len(b))
	const width = 16
	for j := 0; j < len(b); j += width {
		dumpNewline(w, indent+1)
		w.WriteString("| ")
		n := j + width
		if n > len(b) {
			n = len(b)
		}
		for i := j; i < j+width; i++ {
			if i < n {
				fmt.Fprintf(w, "%02x", b[i])
			} else {
				w.WriteString("  ")
			}
			if (i+1)%8 == 0 {
				w.WriteString("  ")
			} else {
				w.WriteString(" ")
			}
		}
		w.WriteByte('|')
		for _, c := range b[j:n] {
			if 32 <= c && c <= 126 {
				w.WriteByte(c)
			} else {
				w.WriteByte('.')
			}
		}
		w.WriteByte('|')
	}
}
