package models

const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
	TimeSecondsLayout = "15:04:05"
)

// WateringRecord is one diary entry. ErrorRateK is computed by the API:
// positive means the plant got less water than recommended, negative more.
type WateringRecord struct {
	ID             int64  `json:"id"`
	UserPlantID    int64  `json:"userPlantId"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	VolumeWatering int    `json:"volumeWatering"`
	ErrorRateK     int    `json:"errorRateK"`
}

type WateringRecordCreate struct {
	UserPlantID    int64  `json:"userPlantId"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	VolumeWatering int    `json:"volumeWatering"`
}

type WateringRecordPatch struct {
	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	VolumeWatering *int   `json:"volumeWatering,omitempty"`
}

func (patch WateringRecordPatch) IsEmpty() bool {
	return patch.Date == "" && patch.Time == "" && patch.VolumeWatering == nil
}

type Recommendation struct {
	UserPlantID       int64  `json:"userPlantId"`
	RecommendedVolume int    `json:"recommendedVolume"`
	Unit              string `json:"unit"`
}
