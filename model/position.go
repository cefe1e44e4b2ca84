package model

// Position is a point in the wrapped 2D snapshot space. X runs along an
// orbital plane (wrapping at the space width), Y across planes (wrapping
// at the space height).
type Position struct {
	X float64
	Y float64
}
