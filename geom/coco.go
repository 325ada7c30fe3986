package geom

import "math"

// COCOBox is the center/width/height bounding-box form used by COCO-style
// labeling exports.
type COCOBox struct {
	XCenter float64 `json:"x_center"`
	YCenter float64 `json:"y_center"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// ToCOCO converts the rectangle into center/width/height form, rounded to the
// given number of decimal places. A negative rounding keeps full precision.
func (r Rect) ToCOCO(rounding int) COCOBox {
	c := r.Center()
	return COCOBox{
		XCenter: roundTo(c.X, rounding),
		YCenter: roundTo(c.Y, rounding),
		Width:   roundTo(r.Width(), rounding),
		Height:  roundTo(r.Height(), rounding),
	}
}

// FromCOCO builds a rectangle from its center/width/height form.
func FromCOCO(b COCOBox) Rect {
	wHalf := b.Width / 2
	hHalf := b.Height / 2
	return NewRect(b.XCenter-wHalf, b.YCenter-hHalf, b.XCenter+wHalf, b.YCenter+hHalf)
}

func roundTo(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
