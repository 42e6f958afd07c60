package services

import (
	"context"

	"github.com/wateringdiary/webapp/internal/models"
)

type PlantLister interface {
	ListUserPlants(ctx context.Context, userID int64) ([]models.UserPlant, error)
}

type DiarySource interface {
	PlantLister
	RecordFetcher
}

// DiaryPage owns the snapshot behind the diary: the user's plants and every
// record of those plants. Reload replaces the snapshot; View never touches it.
type DiaryPage struct {
	source  DiarySource
	userID  int64
	limit   int
	plants  []models.UserPlant
	records []models.WateringRecord
	skipped []SkippedPlant
}

func NewDiaryPage(source DiarySource, userID int64, fanOutLimit int) *DiaryPage {
	return &DiaryPage{source: source, userID: userID, limit: fanOutLimit}
}

// Reload fetches plants first, then their records. Only a failed plant list
// is an error; per plant failures end up in Skipped.
func (page *DiaryPage) Reload(ctx context.Context) error {
	plants, err := page.source.ListUserPlants(ctx, page.userID)
	if err != nil {
		return err
	}

	result := AggregateRecords(ctx, page.source, plants, page.limit)
	page.plants = plants
	page.records = result.Records
	page.skipped = result.Skipped
	return nil
}

func (page *DiaryPage) Plants() []models.UserPlant {
	return page.plants
}

func (page *DiaryPage) Records() []models.WateringRecord {
	return page.records
}

func (page *DiaryPage) Skipped() []SkippedPlant {
	return page.skipped
}

// View filters and sorts the full snapshot. An empty filter yields every
// record, so clearing filters needs no refetch.
func (page *DiaryPage) View(filter RecordFilter) []models.WateringRecord {
	return SortRecordsDesc(FilterRecords(page.records, filter))
}
