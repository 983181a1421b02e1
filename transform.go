package particlefield

import "math"

// RSTransform is the per-sprite draw transform: rotate and uniformly scale
// the frame about (AnchorX, AnchorY) in frame pixels, then place that anchor
// at (TranslateX, TranslateY) on the canvas.
type RSTransform struct {
	TranslateX, TranslateY float64
	Rotation               float64
	Scale                  float64
	AnchorX, AnchorY       float64
}

// Affine returns the equivalent affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t RSTransform) Affine() [6]float64 {
	sin, cos := math.Sincos(t.Rotation)
	scos := cos * t.Scale
	ssin := sin * t.Scale
	tx := t.TranslateX - scos*t.AnchorX + ssin*t.AnchorY
	ty := t.TranslateY - ssin*t.AnchorX - scos*t.AnchorY
	return [6]float64{scos, ssin, -ssin, scos, tx, ty}
}

// applyAffine maps the local point (x, y) through m.
func applyAffine(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
