package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/wateringdiary/webapp/internal/models"
)

const DefaultFanOutLimit = 4

type RecordFetcher interface {
	ListPlantRecords(ctx context.Context, plantID int64) ([]models.WateringRecord, error)
}

// SkippedPlant is a plant whose records could not be fetched.
type SkippedPlant struct {
	PlantID int64
	Err     error
}

type AggregateResult struct {
	Records []models.WateringRecord
	Skipped []SkippedPlant
}

func (result AggregateResult) SkippedIDs() []int64 {
	ids := make([]int64, 0, len(result.Skipped))
	for _, skipped := range result.Skipped {
		ids = append(ids, skipped.PlantID)
	}
	return ids
}

// AggregateRecords fetches the records of every plant concurrently and
// flattens them in plant order. A plant whose fetch fails contributes no
// records and is reported in Skipped; the aggregation itself never fails.
func AggregateRecords(ctx context.Context, fetcher RecordFetcher, plants []models.UserPlant, limit int) AggregateResult {
	if limit < 1 {
		limit = DefaultFanOutLimit
	}

	perPlant := make([][]models.WateringRecord, len(plants))
	failures := make([]error, len(plants))

	var group errgroup.Group
	group.SetLimit(limit)
	for index, plant := range plants {
		group.Go(func() error {
			records, err := fetcher.ListPlantRecords(ctx, plant.ID)
			if err != nil {
				failures[index] = err
				return nil
			}
			perPlant[index] = records
			return nil
		})
	}
	_ = group.Wait()

	result := AggregateResult{Records: []models.WateringRecord{}}
	for index, plant := range plants {
		if failures[index] != nil {
			result.Skipped = append(result.Skipped, SkippedPlant{PlantID: plant.ID, Err: failures[index]})
			continue
		}
		result.Records = append(result.Records, perPlant[index]...)
	}
	return result
}
