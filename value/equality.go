package value

// compareByShape is the fallback ordering used whenever two values can't be
// compared by their own concrete-type logic (different shapes, or same
// shape-rank but distinct concrete types). Implements the §9 Open Question
// #3 decision recorded on TypeCode.shapeRank: primitive < (list, set,
// tuple, enum) < map < object, with TypeCode itself as a stable tiebreaker
// within a rank so Compare never reports 0 for genuinely distinct shapes.
func compareByShape(a, b Value) int {
	ra, rb := a.Type().shapeRank(), b.Type().shapeRank()
	if ra != rb {
		return compareInt64(int64(ra), int64(rb))
	}
	if a.Type() != b.Type() {
		return compareInt64(int64(a.Type()), int64(b.Type()))
	}
	return 0
}
