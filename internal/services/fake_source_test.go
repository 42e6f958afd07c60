package services

import (
	"context"
	"errors"
	"sync"

	"github.com/wateringdiary/webapp/internal/models"
)

var errFakeUnavailable = errors.New("fake api unavailable")

type fakeSource struct {
	mu sync.Mutex

	plants       []models.UserPlant
	plantsErr    error
	records      map[int64][]models.WateringRecord
	recordErrs   map[int64]error
	plantTypes   []models.PlantType
	typesErr     error
	materials    []models.Material
	materialsErr error
	conditions   []models.Condition

	recordCalls []int64
}

func (source *fakeSource) ListUserPlants(ctx context.Context, userID int64) ([]models.UserPlant, error) {
	if source.plantsErr != nil {
		return nil, source.plantsErr
	}
	return source.plants, nil
}

func (source *fakeSource) ListPlantRecords(ctx context.Context, plantID int64) ([]models.WateringRecord, error) {
	source.mu.Lock()
	source.recordCalls = append(source.recordCalls, plantID)
	source.mu.Unlock()

	if err := source.recordErrs[plantID]; err != nil {
		return nil, err
	}
	return source.records[plantID], nil
}

func (source *fakeSource) ListPlantTypes(ctx context.Context) ([]models.PlantType, error) {
	if source.typesErr != nil {
		return nil, source.typesErr
	}
	return source.plantTypes, nil
}

func (source *fakeSource) ListMaterials(ctx context.Context) ([]models.Material, error) {
	if source.materialsErr != nil {
		return nil, source.materialsErr
	}
	return source.materials, nil
}

func (source *fakeSource) ListConditions(ctx context.Context, userID int64) ([]models.Condition, error) {
	return source.conditions, nil
}

func record(id int64, plantID int64, date string, clock string) models.WateringRecord {
	return models.WateringRecord{ID: id, UserPlantID: plantID, Date: date, Time: clock, VolumeWatering: 100}
}

func recordIDs(records []models.WateringRecord) []int64 {
	ids := make([]int64, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	return ids
}
