package apiclient

import (
	"context"
	"net/http"

	"github.com/wateringdiary/webapp/internal/models"
)

func (client *Client) ListUserPlants(ctx context.Context, userID int64) ([]models.UserPlant, error) {
	plants := []models.UserPlant{}
	err := client.do(ctx, call{
		op:       "list",
		resource: ResourcePlants,
		method:   http.MethodGet,
		path:     []string{"user-plants", "user", idSegment(userID)},
	}, &plants)
	if err != nil {
		return nil, err
	}
	return plants, nil
}

func (client *Client) GetUserPlant(ctx context.Context, id int64) (models.UserPlant, error) {
	var plant models.UserPlant
	err := client.do(ctx, call{
		op:       "get",
		resource: ResourcePlants,
		method:   http.MethodGet,
		path:     []string{"user-plants", idSegment(id)},
	}, &plant)
	return plant, err
}

func (client *Client) CreateUserPlant(ctx context.Context, payload models.UserPlantCreate) (models.UserPlant, error) {
	var plant models.UserPlant
	err := client.do(ctx, call{
		op:       "create",
		resource: ResourcePlants,
		method:   http.MethodPost,
		path:     []string{"user-plants"},
		body:     payload,
	}, &plant)
	return plant, err
}

func (client *Client) UpdateUserPlant(ctx context.Context, id int64, patch models.UserPlantPatch) (models.UserPlant, error) {
	var plant models.UserPlant
	err := client.do(ctx, call{
		op:       "update",
		resource: ResourcePlants,
		method:   http.MethodPatch,
		path:     []string{"user-plants", idSegment(id)},
		body:     patch,
	}, &plant)
	return plant, err
}

func (client *Client) DeleteUserPlant(ctx context.Context, id int64) error {
	return client.do(ctx, call{
		op:       "delete",
		resource: ResourcePlants,
		method:   http.MethodDelete,
		path:     []string{"user-plants", idSegment(id)},
	}, nil)
}
