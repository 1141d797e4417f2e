package core

// Selection is the outcome of one best-station scan.
type Selection struct {
	Device Point
	// Station is nil when no station produced a positive power.
	Station *Station
	Power   float64
}

// Selected reports whether a station was chosen.
func (s Selection) Selected() bool {
	return s.Station != nil && s.Power != 0
}

// String renders the selection as a human-readable message.
func (s Selection) String() string {
	return FormatMessage(s.Power, s.Station, s.Device)
}

// Option configures a Selector.
type Option func(*Selector)

// WithDistanceFunc replaces the distance metric. A nil fn keeps the default.
func WithDistanceFunc(fn DistanceFunc) Option {
	return func(s *Selector) {
		if fn != nil {
			s.distance = fn
		}
	}
}

// Selector picks the best link station for a device. The zero value and a nil
// *Selector both use Distance. A Selector holds no mutable state and is safe
// for concurrent use.
type Selector struct {
	distance DistanceFunc
}

// NewSelector constructs a Selector with the given options applied.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{distance: Distance}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Selector) distanceFunc() DistanceFunc {
	if s == nil || s.distance == nil {
		return Distance
	}
	return s.distance
}

// Select scans stations in order and returns the one with the highest power.
// Only a strictly greater power replaces the current best, so the first
// station reaching the maximum wins and a zero (or NaN) power never selects.
func (s *Selector) Select(device Point, stations []Station) Selection {
	dist := s.distanceFunc()

	best := Selection{Device: device}
	for i := range stations {
		st := stations[i]
		power := Power(st.Reach, dist(device, st.Point()))
		if power > best.Power {
			best.Power = power
			best.Station = &st
		}
	}
	return best
}

// BestLinkStation returns the message describing the best station for device.
func (s *Selector) BestLinkStation(device Point, stations []Station) string {
	return s.Select(device, stations).String()
}

var defaultSelector = NewSelector()

// Select runs the default selector.
func Select(device Point, stations []Station) Selection {
	return defaultSelector.Select(device, stations)
}

// BestLinkStation runs the default selector and formats its result, e.g.
//
//	Best link station for point 1,1 is 1,1 with power 25
func BestLinkStation(device Point, stations []Station) string {
	return defaultSelector.BestLinkStation(device, stations)
}
