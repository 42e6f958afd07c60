package services

import "github.com/wateringdiary/webapp/internal/models"

// Lookups scan already fetched collections. A missing id is not an error:
// the referenced entity may have been deleted after the plant was created.

func PlantByID(plants []models.UserPlant, id int64) (models.UserPlant, bool) {
	for _, plant := range plants {
		if plant.ID == id {
			return plant, true
		}
	}
	return models.UserPlant{}, false
}

func PlantTypeByID(plantTypes []models.PlantType, id int64) (models.PlantType, bool) {
	for _, plantType := range plantTypes {
		if plantType.ID == id {
			return plantType, true
		}
	}
	return models.PlantType{}, false
}

func MaterialByID(materials []models.Material, id int64) (models.Material, bool) {
	for _, material := range materials {
		if material.ID == id {
			return material, true
		}
	}
	return models.Material{}, false
}

func ConditionByID(conditions []models.Condition, id int64) (models.Condition, bool) {
	for _, condition := range conditions {
		if condition.ID == id {
			return condition, true
		}
	}
	return models.Condition{}, false
}

func RecordByID(records []models.WateringRecord, id int64) (models.WateringRecord, bool) {
	for _, record := range records {
		if record.ID == id {
			return record, true
		}
	}
	return models.WateringRecord{}, false
}

func PlantName(plants []models.UserPlant, id int64, unknown string) string {
	if plant, ok := PlantByID(plants, id); ok {
		return plant.Name
	}
	return unknown
}

func PlantTypeName(plantTypes []models.PlantType, id int64, unknown string) string {
	if plantType, ok := PlantTypeByID(plantTypes, id); ok {
		return plantType.Name
	}
	return unknown
}

func MaterialName(materials []models.Material, id int64, unknown string) string {
	if material, ok := MaterialByID(materials, id); ok {
		return material.Name
	}
	return unknown
}
