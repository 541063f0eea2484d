package domain

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether age lies within the range, both ends inclusive.
func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

// MatchCriteria describes what a searcher is looking for. Values are taken as
// given: negative or inverted ranges are not rejected.
type MatchCriteria struct {
	AgeRange        AgeRange   `json:"age_range"`
	InterestsCommon []Interest `json:"interests_common"`
	Distance        float64    `json:"distance"`
}
