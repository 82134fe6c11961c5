package pcmodel

// The catalog tables below are maintained by administrators and referenced by
// profiles and attendance records.

type Skill struct {
	ID          int    `json:"id"`
	Name        string `json:"name" gorm:"size:64"`
	Description string `json:"description"`
}

type FoodRestriction struct {
	ID          int    `json:"id"`
	Name        string `json:"name" gorm:"size:64"`
	Description string `json:"description"`
}

type Job struct {
	ID          int    `json:"id"`
	Name        string `json:"name" gorm:"size:64"`
	Description string `json:"description"`
}

type TransportationMethod struct {
	ID          int    `json:"id"`
	Name        string `json:"name" gorm:"size:64"`
	Description string `json:"description"`
}

// Zipcode backs the zipcode to city lookup used for profile locations.
type Zipcode struct {
	Code  string `json:"code" gorm:"primaryKey;size:5"`
	City  string `json:"city" gorm:"size:64"`
	State string `json:"state" gorm:"size:2"`
}

func (z Zipcode) CityAndState() string {
	return z.City + ", " + z.State
}
