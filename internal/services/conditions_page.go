package services

import (
	"context"

	"github.com/wateringdiary/webapp/internal/models"
)

type ConditionLister interface {
	ListConditions(ctx context.Context, userID int64) ([]models.Condition, error)
}

type ConditionsPage struct {
	source     ConditionLister
	userID     int64
	conditions []models.Condition
}

func NewConditionsPage(source ConditionLister, userID int64) *ConditionsPage {
	return &ConditionsPage{source: source, userID: userID}
}

func (page *ConditionsPage) Reload(ctx context.Context) error {
	conditions, err := page.source.ListConditions(ctx, page.userID)
	if err != nil {
		return err
	}
	page.conditions = conditions
	return nil
}

func (page *ConditionsPage) View() []models.Condition {
	return SortConditionsDesc(page.conditions)
}
