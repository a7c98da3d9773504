package model

// FilterAll is the query-string sentinel meaning "no constraint". Callers
// normalize it (or an empty value) into the zero field below.
const FilterAll = "all"

// FilterSpec narrows which classes an aggregation considers. Zero-valued
// fields impose no constraint; date bounds are inclusive and independent.
type FilterSpec struct {
	StudentID *int64
	Status    ClassStatus
	DateFrom  string // YYYY-MM-DD
	DateTo    string // YYYY-MM-DD
}
