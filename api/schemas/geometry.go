// api/schemas/geometry.go
// Shared geometry types used by the element core, the input layer and the
// platform adapters. Coordinates are screen pixels with the origin at the
// top-left corner.
package schemas

import "fmt"

// Rect is an axis-aligned rectangle in screen coordinates. The right and
// bottom edges are exclusive, matching the convention of accessibility
// hierarchy dumps.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// ShortString renders the rectangle in the compact "[l,t][r,b]" form used
// by hierarchy dumps and debug output.
func (r Rect) ShortString() string {
	return fmt.Sprintf("[%d,%d][%d,%d]", r.Left, r.Top, r.Right, r.Bottom)
}

// ParseRect parses the compact "[l,t][r,b]" form produced by ShortString
// and by uiautomator-style dump files.
func ParseRect(s string) (Rect, error) {
	var r Rect
	n, err := fmt.Sscanf(s, "[%d,%d][%d,%d]", &r.Left, &r.Top, &r.Right, &r.Bottom)
	if err != nil || n != 4 {
		return Rect{}, fmt.Errorf("malformed bounds %q", s)
	}
	return r, nil
}

// Point is a single screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}
