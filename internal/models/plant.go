package models

// UserPlant is a plant owned by a user. High, PotSize and SoilLoosenerK are
// optional on the API side; nil means the value was never set.
type UserPlant struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	Name          string `json:"name"`
	PlantTypeID   int64  `json:"plantTypeId"`
	MaterialID    int64  `json:"materialId"`
	High          *int   `json:"high,omitempty"`
	PotSize       *int   `json:"potSize,omitempty"`
	SoilLoosenerK *int   `json:"soilLoosenerk,omitempty"`
}

type UserPlantCreate struct {
	UserID        int64  `json:"userId"`
	Name          string `json:"name"`
	PlantTypeID   int64  `json:"plantTypeId"`
	MaterialID    int64  `json:"materialId"`
	High          *int   `json:"high,omitempty"`
	PotSize       *int   `json:"potSize,omitempty"`
	SoilLoosenerK *int   `json:"soilLoosenerk,omitempty"`
}

type UserPlantPatch struct {
	Name          string `json:"name,omitempty"`
	PlantTypeID   *int64 `json:"plantTypeId,omitempty"`
	MaterialID    *int64 `json:"materialId,omitempty"`
	High          *int   `json:"high,omitempty"`
	PotSize       *int   `json:"potSize,omitempty"`
	SoilLoosenerK *int   `json:"soilLoosenerk,omitempty"`
}

func (patch UserPlantPatch) IsEmpty() bool {
	return patch.Name == "" &&
		patch.PlantTypeID == nil &&
		patch.MaterialID == nil &&
		patch.High == nil &&
		patch.PotSize == nil &&
		patch.SoilLoosenerK == nil
}
