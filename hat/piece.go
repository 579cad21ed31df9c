package hat

// Piece is the part of the hat selected by a rescaled area: the interval it
// belongs to, the construction point whose tangent forms it, and the signed
// area between that point and the selected location.
type Piece struct {
	Interval int
	Anchor   int
	Offset   RescaledArea
}

// SelectPiece splits u, a cumulative area falling into interval i, into the
// left or right hat piece of i.
func (s *Store) SelectPiece(i int, u RescaledArea) Piece {
	iv := s.ivs[i]
	area := s.Area(i)

	// u is now in (-area, 0]
	u -= iv.Cumulative
	if -u < area*RescaledArea(iv.RightFraction) {
		// right piece, measured leftwards from the next point
		return Piece{Interval: i, Anchor: iv.next, Offset: u}
	}
	return Piece{Interval: i, Anchor: i, Offset: u + area}
}

// Point inverts the hat piece p.
func (s *Store) Point(p Piece) float64 {
	a := s.ivs[p.Anchor]
	return Invert(a.X, a.LogF, a.DLogF, p.Offset, s.LogAreaMax)
}

// Locate returns the hat piece containing the cumulative area u.
func (s *Store) Locate(g *Guide, u RescaledArea) Piece {
	return s.SelectPiece(g.Lookup(s, u), u)
}

// Span returns the construction points bounding interval i.
func (s *Store) Span(i int) (float64, float64) {
	return s.ivs[i].X, s.ivs[s.ivs[i].next].X
}
