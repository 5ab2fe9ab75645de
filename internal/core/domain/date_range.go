package domain

// DateRange is a nanosecond time window. An EndDate of zero is open-ended
// for IsWithin.
type DateRange struct {
	StartDate uint64 `json:"start_date"`
	EndDate   uint64 `json:"end_date"`
}

// NewDateRange creates a DateRange.
func NewDateRange(start, end uint64) DateRange {
	return DateRange{StartDate: start, EndDate: end}
}

func (r DateRange) IsWithin(date uint64) bool {
	if r.EndDate == 0 {
		return date >= r.StartDate
	}
	return date >= r.StartDate && date <= r.EndDate
}

func (r DateRange) IsOutside(date uint64) bool {
	return date < r.StartDate || date > r.EndDate
}

func (r DateRange) IsBeforeStartDate(date uint64) bool { return date < r.StartDate }
func (r DateRange) IsAfterStartDate(date uint64) bool  { return date > r.StartDate }
func (r DateRange) IsBeforeEndDate(date uint64) bool   { return date < r.EndDate }
func (r DateRange) IsAfterEndDate(date uint64) bool    { return date > r.EndDate }
