package shared

// NameMatch is a lightweight search hit returned by name searches.
type NameMatch struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
