package core

// Power scores a station at the given distance. Anything farther than reach
// scores 0; otherwise the score is (reach - distance)².
//
// A NaN distance is never "farther" than reach, so it yields NaN.
func Power(reach, distance float64) float64 {
	if distance > reach {
		return 0
	}
	d := reach - distance
	return d * d
}
