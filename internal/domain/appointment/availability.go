package appointment

type AvailabilityInput struct {
	ProfessionalID uint
	ServiceID      uint
	Date           string
}

type DayAvailability struct {
	Date             string   `json:"date"`
	Slots            []string `json:"slots"`
	ProfessionalName string   `json:"professional_name"`
}

type MonthAvailabilityInput struct {
	ProfessionalID uint
	ServiceID      uint
	Year           int
	Month          int
}

type MonthAvailability struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Dates []string `json:"available_dates"`
}
