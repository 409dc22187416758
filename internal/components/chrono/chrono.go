package chrono

import "time"

// API is an abstraction over the wall clock.
//
// note: fault injection point
type API interface {
	Now() time.Time
	Location() *time.Location
}

// PortalLocation is the timezone the portal and its students live in.
const PortalLocation = "Asia/Kolkata"

type StandardImpl struct {
	location *time.Location
}

func NewStandardImpl() (StandardImpl, error) {
	location, err := time.LoadLocation(PortalLocation)
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// FixedImpl is a clock that only moves when told to.
type FixedImpl struct {
	now *time.Time
}

func NewFixedImpl(now time.Time) FixedImpl {
	return FixedImpl{now: &now}
}

func (f FixedImpl) Now() time.Time {
	return *f.now
}

func (f FixedImpl) Location() *time.Location {
	return f.now.Location()
}

// Advance moves the clock forward by d.
func (f FixedImpl) Advance(d time.Duration) {
	*f.now = f.now.Add(d)
}
