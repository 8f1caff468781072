package draw

// Point is one sampled cursor position within a stroke, in pixel
// coordinates of the camera frame, with a millisecond timestamp.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"t"`
}

// Stroke is one continuous drawn path: the points collected between the
// trigger hand requesting drawing and releasing it.
type Stroke struct {
	ID        string  `json:"id"`
	Points    []Point `json:"points"`
	StartedAt int64   `json:"started_at"`
	EndedAt   int64   `json:"ended_at"`
}

// Resample returns a copy of the stroke with exactly n points, linearly
// interpolated along the original path. Timestamps interpolate with the
// positions so playback speed is preserved.
func (s Stroke) Resample(n int) Stroke {
	out := s
	out.Points = resamplePoints(s.Points, n)
	return out
}

func resamplePoints(points []Point, n int) []Point {
	if len(points) == 0 {
		return nil
	}
	if len(points) == 1 || n <= 1 {
		return []Point{points[0]}
	}

	result := make([]Point, n)
	for i := 0; i < n; i++ {
		// Map index i onto a fractional position in the original path.
		t := float64(i) / float64(n-1)
		pos := t * float64(len(points)-1)

		idx := int(pos)
		if idx >= len(points)-1 {
			idx = len(points) - 2
		}
		frac := pos - float64(idx)

		p1 := points[idx]
		p2 := points[idx+1]
		result[i] = Point{
			X:         p1.X + frac*(p2.X-p1.X),
			Y:         p1.Y + frac*(p2.Y-p1.Y),
			Timestamp: p1.Timestamp + int64(frac*float64(p2.Timestamp-p1.Timestamp)),
		}
	}
	return result
}
