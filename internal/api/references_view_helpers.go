package api

import (
	"github.com/wateringdiary/webapp/internal/models"
	"github.com/wateringdiary/webapp/internal/services"
)

const (
	referencesTabPlantTypes = "plant-types"
	referencesTabMaterials  = "materials"
)

type plantTypeRow struct {
	PlantType models.PlantType
	Category  services.Category
}

type materialRow struct {
	Material models.Material
	Category services.Category
}

// referenceDetail is the side panel of a single plant type or material.
type referenceDetail struct {
	Name        string
	Description string
	WateringK   int
	Category    services.Category
}

func buildPlantTypeRows(plantTypes []models.PlantType) []plantTypeRow {
	rows := make([]plantTypeRow, 0, len(plantTypes))
	for _, plantType := range plantTypes {
		rows = append(rows, plantTypeRow{PlantType: plantType, Category: services.PlantTypeCategory(plantType.WateringK)})
	}
	return rows
}

func buildMaterialRows(materials []models.Material) []materialRow {
	rows := make([]materialRow, 0, len(materials))
	for _, material := range materials {
		rows = append(rows, materialRow{Material: material, Category: services.MaterialCategory(material.WateringK)})
	}
	return rows
}

func plantTypeDetail(plantType models.PlantType, noDescription string) *referenceDetail {
	description := plantType.Description
	if description == "" {
		description = noDescription
	}
	return &referenceDetail{
		Name:        plantType.Name,
		Description: description,
		WateringK:   plantType.WateringK,
		Category:    services.PlantTypeCategory(plantType.WateringK),
	}
}

// materialDetail has no free text of its own; the description comes from the
// category advice.
func materialDetail(material models.Material) *referenceDetail {
	return &referenceDetail{
		Name:      material.Name,
		WateringK: material.WateringK,
		Category:  services.MaterialCategory(material.WateringK),
	}
}
