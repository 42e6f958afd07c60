package apiclient

import (
	"context"
	"net/http"

	"github.com/wateringdiary/webapp/internal/models"
)

func (client *Client) ListConditions(ctx context.Context, userID int64) ([]models.Condition, error) {
	conditions := []models.Condition{}
	err := client.do(ctx, call{
		op:       "list",
		resource: ResourceConditions,
		method:   http.MethodGet,
		path:     []string{"conditions", "user", idSegment(userID)},
	}, &conditions)
	if err != nil {
		return nil, err
	}
	return conditions, nil
}

func (client *Client) GetCondition(ctx context.Context, id int64) (models.Condition, error) {
	var condition models.Condition
	err := client.do(ctx, call{
		op:       "get",
		resource: ResourceConditions,
		method:   http.MethodGet,
		path:     []string{"conditions", idSegment(id)},
	}, &condition)
	return condition, err
}

func (client *Client) CreateCondition(ctx context.Context, payload models.ConditionCreate) (models.Condition, error) {
	var condition models.Condition
	err := client.do(ctx, call{
		op:       "create",
		resource: ResourceConditions,
		method:   http.MethodPost,
		path:     []string{"conditions"},
		body:     payload,
	}, &condition)
	return condition, err
}

func (client *Client) UpdateCondition(ctx context.Context, id int64, patch models.ConditionPatch) (models.Condition, error) {
	var condition models.Condition
	err := client.do(ctx, call{
		op:       "update",
		resource: ResourceConditions,
		method:   http.MethodPatch,
		path:     []string{"conditions", idSegment(id)},
		body:     patch,
	}, &condition)
	return condition, err
}

func (client *Client) DeleteCondition(ctx context.Context, id int64) error {
	return client.do(ctx, call{
		op:       "delete",
		resource: ResourceConditions,
		method:   http.MethodDelete,
		path:     []string{"conditions", idSegment(id)},
	}, nil)
}
