package dto

type RangeInput struct {
	From string
	To   string
}

type HourBin struct {
	Hour              int `json:"hour"`
	Unlockable        int `json:"unlockable"`
	BreakTimer        int `json:"break_timer"`
	RequirementNotMet int `json:"requirement_not_met"`
	Other             int `json:"other"`
}

func (b HourBin) Total() int {
	return b.Unlockable + b.BreakTimer + b.RequirementNotMet + b.Other
}

// Counts returns the stacked counts in legend order.
func (b HourBin) Counts() []int {
	return []int{b.Unlockable, b.BreakTimer, b.RequirementNotMet, b.Other}
}

type DeactivationsOutput struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	Total  int       `json:"total"`
	Legend []string  `json:"legend"`
	Bins   []HourBin `json:"bins"`
}

type RequirementPoint struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type RequirementSeries struct {
	Name        string             `json:"name"`
	Median      string             `json:"median"`
	MedianHours float64            `json:"median_hours"`
	Points      []RequirementPoint `json:"points"`
}

type RequirementsOutput struct {
	From   string              `json:"from"`
	To     string              `json:"to"`
	Series []RequirementSeries `json:"series"`
}
