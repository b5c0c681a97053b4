package models

// Milestone is a fixed day-count threshold with display metadata.
type Milestone struct {
	DaysRequired int    `json:"days_required" yaml:"days"`
	Title        string `json:"title" yaml:"title"`
	Icon         string `json:"icon" yaml:"icon"`
	Description  string `json:"description" yaml:"description"`
}
