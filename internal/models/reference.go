package models

type PlantType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	WateringK   int    `json:"wateringK"`
}

type Material struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	WateringK int    `json:"wateringK"`
}
