package apiclient

import (
	"context"
	"net/http"

	"github.com/wateringdiary/webapp/internal/models"
)

func (client *Client) ListPlantTypes(ctx context.Context) ([]models.PlantType, error) {
	plantTypes := []models.PlantType{}
	err := client.do(ctx, call{
		op:       "list",
		resource: ResourcePlantTypes,
		method:   http.MethodGet,
		path:     []string{"plant-types"},
	}, &plantTypes)
	if err != nil {
		return nil, err
	}
	return plantTypes, nil
}

func (client *Client) ListMaterials(ctx context.Context) ([]models.Material, error) {
	materials := []models.Material{}
	err := client.do(ctx, call{
		op:       "list",
		resource: ResourceMaterials,
		method:   http.MethodGet,
		path:     []string{"materials"},
	}, &materials)
	if err != nil {
		return nil, err
	}
	return materials, nil
}
