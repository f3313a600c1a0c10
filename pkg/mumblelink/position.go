package mumblelink

// InchesPerMeter is the factor applied by ToImperial.
const InchesPerMeter = 39.3701

func (v Vector3D) scale(f float32) Vector3D {
	return Vector3D{v[0] * f, v[1] * f, v[2] * f}
}

// ToImperial returns p with every component converted from meters to inches.
// Applying it to an already converted value scales again.
func (p Position) ToImperial() PositionImperial {
	return PositionImperial{
		Position: p.Position.scale(InchesPerMeter),
		Front:    p.Front.scale(InchesPerMeter),
		Top:      p.Top.scale(InchesPerMeter),
	}
}
