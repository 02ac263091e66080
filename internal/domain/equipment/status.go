package equipment

import "github.com/raksinkh/equipment-management/internal/httperr"

// ===============================
// Equipment Status
// ===============================

type Status string

const (
	StatusAvailable   Status = "available"
	StatusBorrowed    Status = "borrowed"
	StatusMaintenance Status = "maintenance"
)

var transitions = map[Status][]Status{
	StatusAvailable:   {StatusBorrowed, StatusMaintenance},
	StatusBorrowed:    {StatusAvailable, StatusMaintenance},
	StatusMaintenance: {StatusAvailable},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

// CanTransition reports whether an equipment row may move from current to next.
// Writing the same status again is always allowed.
func CanTransition(current, next Status) error {
	if !next.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if current == next {
		return nil
	}
	for _, allowed := range transitions[current] {
		if allowed == next {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// DefaultStatus is what a newly created item starts in when the form leaves status empty.
func DefaultStatus() Status {
	return StatusAvailable
}
