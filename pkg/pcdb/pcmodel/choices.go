package pcmodel

// Choice is one entry of a fixed choice table: the stored token and the label
// shown to people.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Choices []Choice

func (c Choices) Label(value string) (string, bool) {
	for _, choice := range c {
		if choice.Value == value {
			return choice.Label, true
		}
	}
	return "", false
}

func (c Choices) Contains(value string) bool {
	_, ok := c.Label(value)
	return ok
}

// LabelOf returns the label for a nullable token, or "" when the token is
// absent or unknown.
func (c Choices) LabelOf(value *string) string {
	if value == nil {
		return ""
	}
	label, _ := c.Label(*value)
	return label
}

var EarlyArrivalChoices = Choices{
	{"wednesday1", "Wednesday (Early)"},
	{"thursday1", "Thursday (Early)"},
	{"friday1", "Friday (Early)"},
	{"saturday", "Saturday (Early)"},
}

var ArrivalChoices = append(append(Choices{}, EarlyArrivalChoices...),
	Choice{"sunday", "Sunday"},
	Choice{"monday", "Monday"},
	Choice{"tuesday", "Tuesday"},
	Choice{"wednesday2", "Wednesday"},
	Choice{"thursday2", "Thursday"},
	Choice{"friday2", "Friday"},
)

var LateDepartureChoices = Choices{
	{"monday", "Monday (Late Crew)"},
	{"tuesday", "Tuesday (Late Crew)"},
}

var DepartureChoices = append(Choices{
	{"wednesday", "Wednesday"},
	{"thursday", "Thursday"},
	{"friday", "Friday"},
	{"saturday", "Saturday (Man Burn)"},
	{"sunday", "Sunday (Temple Burn)"},
}, LateDepartureChoices...)

var HousingChoices = Choices{
	{"campyurt", "Camp Yurt"},
	{"personalyurt", "Personal Yurt"},
	{"tent", "Tent"},
	{"rv", "RV"},
	{"container", "Container"},
	{"van", "Van"},
	{"shiftpod", "Shiftpod"},
	{"other", "Other"},
}

var BicycleChoices = Choices{
	{"rent", "Renting"},
	{"have", "Have"},
	{"need", "Need"},
}

var ShiftTimeChoices = Choices{
	{"day", "Day shifts"},
	{"night", "Evening shifts"},
	{"nopref", "No preference"},
}

var ShiftDayChoices = Choices{
	{"sameday", "All same day"},
	{"b2b", "Back to back days"},
	{"spread", "Spread out"},
	{"nopref", "No preference"},
}
