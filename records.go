package mdlx

// Extent is a bounding sphere and box.
type Extent struct {
	BoundsRadius float32
	Minimum      [3]float32
	Maximum      [3]float32
}

// ModelInfo is the content of the model header chunk.
type ModelInfo struct {
	Name          string
	AnimationPath string
	Extent        Extent
	BlendTime     uint32
}

// Sequence is an animation clip.
type Sequence struct {
	Name string

	// Interval is the first and last frame of the clip.
	Interval [2]uint32

	MoveSpeed float32
	Flags     uint32
	Rarity    float32
	SyncPoint uint32
	Extent    Extent
}

// NonLooping returns whether the sequence plays once rather than looping.
func (s *Sequence) NonLooping() bool {
	return s.Flags&1 != 0
}

// Duration returns the number of frames in the sequence interval.
func (s *Sequence) Duration() uint32 {
	if s.Interval[1] < s.Interval[0] {
		return 0
	}
	return s.Interval[1] - s.Interval[0]
}

// Texture is an image referenced by the layers of materials.
type Texture struct {
	ReplaceableID uint32
	Path          string
	Flags         uint32
}

// WrapWidth returns whether the texture repeats horizontally.
func (t *Texture) WrapWidth() bool { return t.Flags&1 != 0 }

// WrapHeight returns whether the texture repeats vertically.
func (t *Texture) WrapHeight() bool { return t.Flags&2 != 0 }

// FilterMode is the blending mode of a layer.
type FilterMode uint32

const (
	FilterNone FilterMode = iota
	FilterTransparent
	FilterBlend
	FilterAdditive
	FilterAddAlpha
	FilterModulate
	FilterModulate2x
)

// LayerFlags is the shading bitfield of a layer.
type LayerFlags uint32

// Unshaded returns whether lighting is ignored.
func (f LayerFlags) Unshaded() bool { return f&1 != 0 }

// SphereEnvironmentMap returns whether the texture is mapped as a reflection.
func (f LayerFlags) SphereEnvironmentMap() bool { return f&2 != 0 }

// TwoSided returns whether back faces are drawn.
func (f LayerFlags) TwoSided() bool { return f&16 != 0 }

// Unfogged returns whether fog is ignored.
func (f LayerFlags) Unfogged() bool { return f&32 != 0 }

// NoDepthTest returns whether the depth test is disabled.
func (f LayerFlags) NoDepthTest() bool { return f&64 != 0 }

// NoDepthSet returns whether depth writes are disabled.
func (f LayerFlags) NoDepthSet() bool { return f&128 != 0 }

// Layer is one rendering pass of a material.
type Layer struct {
	FilterMode         FilterMode
	ShadingFlags       LayerFlags
	TextureID          uint32
	TextureAnimationID int32
	CoordID            uint32
	Alpha              float32
	Tracks             TrackSets
}

// Material is a stack of layers.
type Material struct {
	PriorityPlane uint32
	Flags         uint32
	Layers        []Layer
}

// TextureAnimation animates the texture coordinates of a layer.
type TextureAnimation struct {
	Tracks TrackSets
}

// Geoset is a piece of geometry.
type Geoset struct {
	Positions      [][3]float32
	Normals        [][3]float32
	FaceTypeGroups []uint32
	FaceGroups     []uint32
	Faces          []uint16
	VertexGroups   []uint8
	MatrixGroups   []uint32
	MatrixIndices  []uint32
	MaterialID     uint32
	SelectionGroup uint32
	SelectionFlags uint32
	Extent         Extent

	// SequenceExtents holds one extent per sequence.
	SequenceExtents []Extent

	// TextureCoordinateSets holds one list of coordinates per set, each with
	// one coordinate per vertex.
	TextureCoordinateSets [][][2]float32
}

// GeosetAnimation animates the color and visibility of a geoset.
type GeosetAnimation struct {
	Alpha    float32
	Flags    uint32
	Color    [3]float32
	GeosetID uint32
	Tracks   TrackSets
}

// Bone is a node that deforms geometry.
type Bone struct {
	Node NodeIndex

	// GeosetID and GeosetAnimationID are -1 when unset.
	GeosetID          int32
	GeosetAnimationID int32
}

// LightType is the kind of light source.
type LightType uint32

const (
	LightOmnidirectional LightType = iota
	LightDirectional
	LightAmbient
)

// Light is a node that emits light.
type Light struct {
	Node             NodeIndex
	Type             LightType
	AttenuationStart float32
	AttenuationEnd   float32
	Color            [3]float32
	Intensity        float32
	AmbientColor     [3]float32
	AmbientIntensity float32
	Tracks           TrackSets
}

// Helper is a node with no content of its own.
type Helper struct {
	Node NodeIndex
}

// Attachment is a node that other models can be attached to.
type Attachment struct {
	Node         NodeIndex
	Path         string
	AttachmentID uint32
	Tracks       TrackSets
}

// ParticleEmitter is a node that spawns models as particles.
type ParticleEmitter struct {
	Node            NodeIndex
	EmissionRate    float32
	Gravity         float32
	Longitude       float32
	Latitude        float32
	SpawnModelPath  string
	Lifespan        float32
	InitialVelocity float32
	Tracks          TrackSets
}

// ParticleEmitter2 is a node that spawns textured particles.
type ParticleEmitter2 struct {
	Node              NodeIndex
	Speed             float32
	Variation         float32
	Latitude          float32
	Gravity           float32
	Lifespan          float32
	EmissionRate      float32
	Width             float32
	Length            float32
	FilterMode        FilterMode
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
	Tracks            TrackSets
}

// RibbonEmitter is a node that trails a textured ribbon.
type RibbonEmitter struct {
	Node         NodeIndex
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
	Tracks       TrackSets
}

// EventObject fires at the frames listed in Frames.
type EventObject struct {
	Node             NodeIndex
	GlobalSequenceID int32
	Frames           []uint32
}

// Camera is a viewpoint looking at a target. It is not a node.
type Camera struct {
	Name              string
	Position          [3]float32
	FieldOfView       float32
	FarClippingPlane  float32
	NearClippingPlane float32
	TargetPosition    [3]float32
	Tracks            TrackSets
}

// CollisionType is the shape of a collision volume.
type CollisionType uint32

const (
	CollisionBox CollisionType = iota
	CollisionPlane
	CollisionSphere
	CollisionCylinder
)

// String returns the name of the shape, or "unknown".
func (t CollisionType) String() string {
	switch t {
	case CollisionBox:
		return "box"
	case CollisionPlane:
		return "plane"
	case CollisionSphere:
		return "sphere"
	case CollisionCylinder:
		return "cylinder"
	}
	return "unknown"
}

// HasVertexPair returns whether the shape is described by two points.
func (t CollisionType) HasVertexPair() bool {
	return t == CollisionBox || t == CollisionPlane || t == CollisionCylinder
}

// HasRadius returns whether the shape carries a radius.
func (t CollisionType) HasRadius() bool {
	return t == CollisionSphere || t == CollisionCylinder
}

// CollisionShape is a node bounding a volume for hit tests.
type CollisionShape struct {
	Node NodeIndex
	Type CollisionType

	// Vertices holds two points for boxes, planes and cylinders, and one
	// point for spheres.
	Vertices [][3]float32
	Radius   float32
}
