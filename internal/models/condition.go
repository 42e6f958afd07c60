package models

// Condition is one microclimate measurement: Temperature in degrees Celsius,
// Watering is air humidity in percent.
type Condition struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Date        string `json:"date"`
	Temperature int    `json:"temperature"`
	Watering    int    `json:"watering"`
}

type ConditionCreate struct {
	UserID      int64  `json:"userId"`
	Date        string `json:"date"`
	Temperature int    `json:"temperature"`
	Watering    int    `json:"watering"`
}

type ConditionPatch struct {
	Date        string `json:"date,omitempty"`
	Temperature *int   `json:"temperature,omitempty"`
	Watering    *int   `json:"watering,omitempty"`
}

func (patch ConditionPatch) IsEmpty() bool {
	return patch.Date == "" && patch.Temperature == nil && patch.Watering == nil
}
