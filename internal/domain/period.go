package domain

// Group is a class the user belongs to, as returned by getClassByUser.
type Group struct {
	ID      int64  `json:"groupId"`
	Name    string `json:"groupName"`
	BegDate Millis `json:"begDate"`
}

// PeriodRecord is one academic period (school year, term, quarter).
// ParentID 0 means the period is top level.
type PeriodRecord struct {
	ID           int64  `json:"id"`
	ParentID     int64  `json:"parentId"`
	Name         string `json:"name"`
	StartDate    Millis `json:"date1"`
	EndDate      Millis `json:"date2"`
	StartDateStr string `json:"date1Str"`
	EndDateStr   string `json:"date2Str"`
	TypeCode     string `json:"typeCode"`
}

// Contains reports whether the instant falls inside the period, inclusive.
func (p PeriodRecord) Contains(at Millis) bool {
	return p.StartDate <= at && at <= p.EndDate
}

// PeriodContainer is the dict/periods response: the group's top-level
// period carrying its nested sub-periods in Items.
type PeriodContainer struct {
	PeriodRecord
	Items []PeriodRecord `json:"items"`
}
