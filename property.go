package mdlx

// Property identifies an animatable property of a record.
type Property byte

const (
	PropertyInvalid Property = iota
	PropertyTranslation
	PropertyRotation
	PropertyScaling
	PropertyTextureID
	PropertyAlpha
	PropertyColor
	PropertyAttenuationStart
	PropertyAttenuationEnd
	PropertyIntensity
	PropertyAmbientIntensity
	PropertyAmbientColor
	PropertyVisibility
	PropertyEmissionRate
	PropertyGravity
	PropertyLongitude
	PropertyLatitude
	PropertyLifespan
	PropertySpeed
	PropertyVariation
	PropertyLength
	PropertyWidth
	PropertyHeightAbove
	PropertyHeightBelow
	PropertyTextureSlot
	PropertyPositionTranslation
	PropertyTargetTranslation
	PropertyCameraRoll
	propertyCount
)

type propertyInfo struct {
	name string
	kind Kind
	// Whether the property is stored as a u32 rather than a float.
	integer bool
	def     Value
}

var properties = [propertyCount]propertyInfo{
	PropertyTranslation:         {name: "translation", kind: KindVector3},
	PropertyRotation:            {name: "rotation", kind: KindQuaternion, def: Quaternion(0, 0, 0, 1)},
	PropertyScaling:             {name: "scaling", kind: KindVector3, def: Vector3(1, 1, 1)},
	PropertyTextureID:           {name: "textureId", kind: KindScalar, integer: true},
	PropertyAlpha:               {name: "alpha", kind: KindScalar, def: Scalar(1)},
	PropertyColor:               {name: "color", kind: KindVector3},
	PropertyAttenuationStart:    {name: "attenuationStart", kind: KindScalar},
	PropertyAttenuationEnd:      {name: "attenuationEnd", kind: KindScalar},
	PropertyIntensity:           {name: "intensity", kind: KindScalar},
	PropertyAmbientIntensity:    {name: "ambientIntensity", kind: KindScalar},
	PropertyAmbientColor:        {name: "ambientColor", kind: KindVector3},
	PropertyVisibility:          {name: "visibility", kind: KindScalar, def: Scalar(1)},
	PropertyEmissionRate:        {name: "emissionRate", kind: KindScalar},
	PropertyGravity:             {name: "gravity", kind: KindScalar},
	PropertyLongitude:           {name: "longitude", kind: KindScalar},
	PropertyLatitude:            {name: "latitude", kind: KindScalar},
	PropertyLifespan:            {name: "lifespan", kind: KindScalar},
	PropertySpeed:               {name: "speed", kind: KindScalar},
	PropertyVariation:           {name: "variation", kind: KindScalar},
	PropertyLength:              {name: "length", kind: KindScalar},
	PropertyWidth:               {name: "width", kind: KindScalar},
	PropertyHeightAbove:         {name: "heightAbove", kind: KindScalar},
	PropertyHeightBelow:         {name: "heightBelow", kind: KindScalar},
	PropertyTextureSlot:         {name: "textureSlot", kind: KindScalar, integer: true},
	PropertyPositionTranslation: {name: "positionTranslation", kind: KindVector3},
	PropertyTargetTranslation:   {name: "targetTranslation", kind: KindVector3},
	PropertyCameraRoll:          {name: "cameraRoll", kind: KindScalar},
}

// Valid returns whether the property is known.
func (p Property) Valid() bool {
	return p > PropertyInvalid && p < propertyCount
}

// String returns the name of the property. If the property is not valid,
// then the returned value will be "Invalid".
func (p Property) String() string {
	if !p.Valid() {
		return "Invalid"
	}
	return properties[p].name
}

// Kind returns the kind of values held by tracks of the property.
func (p Property) Kind() Kind {
	if !p.Valid() {
		return KindInvalid
	}
	return properties[p].kind
}

// Integer returns whether values of the property are encoded as unsigned
// integers.
func (p Property) Integer() bool {
	return p.Valid() && properties[p].integer
}

// Default returns the value of the property when no keyframe applies.
func (p Property) Default() Value {
	if !p.Valid() {
		return Value{}
	}
	return properties[p].def
}

// PropertyFromString returns a Property from its name. Returns
// PropertyInvalid if the name is not known.
func PropertyFromString(s string) Property {
	for p := PropertyInvalid + 1; p < propertyCount; p++ {
		if properties[p].name == s {
			return p
		}
	}
	return PropertyInvalid
}
