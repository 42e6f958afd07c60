package api

import (
	"github.com/wateringdiary/webapp/internal/models"
	"github.com/wateringdiary/webapp/internal/services"
)

type plantRow struct {
	Plant        models.UserPlant
	TypeName     string
	MaterialName string
}

type plantFormView struct {
	Editing bool
	Action  string
	Plant   models.UserPlant
}

func buildPlantRows(plants []models.UserPlant, plantTypes []models.PlantType, materials []models.Material, unknown string) []plantRow {
	rows := make([]plantRow, 0, len(plants))
	for _, plant := range plants {
		rows = append(rows, plantRow{
			Plant:        plant,
			TypeName:     services.PlantTypeName(plantTypes, plant.PlantTypeID, unknown),
			MaterialName: services.MaterialName(materials, plant.MaterialID, unknown),
		})
	}
	return rows
}
