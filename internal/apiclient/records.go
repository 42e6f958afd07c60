package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/wateringdiary/webapp/internal/models"
)

func (client *Client) ListPlantRecords(ctx context.Context, plantID int64) ([]models.WateringRecord, error) {
	records := []models.WateringRecord{}
	err := client.do(ctx, call{
		op:       "list",
		resource: ResourceRecords,
		method:   http.MethodGet,
		path:     []string{"watering-records", "plant", idSegment(plantID)},
	}, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (client *Client) GetRecord(ctx context.Context, id int64) (models.WateringRecord, error) {
	var record models.WateringRecord
	err := client.do(ctx, call{
		op:       "get",
		resource: ResourceRecords,
		method:   http.MethodGet,
		path:     []string{"watering-records", idSegment(id)},
	}, &record)
	return record, err
}

func (client *Client) CreateRecord(ctx context.Context, payload models.WateringRecordCreate) (models.WateringRecord, error) {
	var record models.WateringRecord
	err := client.do(ctx, call{
		op:       "create",
		resource: ResourceRecords,
		method:   http.MethodPost,
		path:     []string{"watering-records"},
		body:     payload,
	}, &record)
	return record, err
}

func (client *Client) UpdateRecord(ctx context.Context, id int64, patch models.WateringRecordPatch) (models.WateringRecord, error) {
	var record models.WateringRecord
	err := client.do(ctx, call{
		op:       "update",
		resource: ResourceRecords,
		method:   http.MethodPatch,
		path:     []string{"watering-records", idSegment(id)},
		body:     patch,
	}, &record)
	return record, err
}

func (client *Client) DeleteRecord(ctx context.Context, id int64) error {
	return client.do(ctx, call{
		op:       "delete",
		resource: ResourceRecords,
		method:   http.MethodDelete,
		path:     []string{"watering-records", idSegment(id)},
	}, nil)
}

// Recommend asks the API for the watering volume of a plant. The number is
// computed server side; the client only displays it.
func (client *Client) Recommend(ctx context.Context, plantID int64) (models.Recommendation, error) {
	var recommendation models.Recommendation
	err := client.do(ctx, call{
		op:       "calculate",
		resource: ResourceRecommendation,
		method:   http.MethodGet,
		path:     []string{"watering-records", "calculate"},
		query:    url.Values{"userPlantId": []string{idSegment(plantID)}},
	}, &recommendation)
	if err != nil {
		return models.Recommendation{}, err
	}
	if recommendation.UserPlantID == 0 {
		recommendation.UserPlantID = plantID
	}
	return recommendation, nil
}
