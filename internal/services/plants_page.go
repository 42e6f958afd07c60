package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/wateringdiary/webapp/internal/models"
)

type ReferenceLister interface {
	ListPlantTypes(ctx context.Context) ([]models.PlantType, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
}

type PlantsSource interface {
	ReferenceLister
	PlantLister
}

// PlantsPage loads the three independent collections behind the plants list.
// A failed collection stays empty; the others still render.
type PlantsPage struct {
	source     PlantsSource
	userID     int64
	plantTypes []models.PlantType
	materials  []models.Material
	plants     []models.UserPlant
}

func NewPlantsPage(source PlantsSource, userID int64) *PlantsPage {
	return &PlantsPage{source: source, userID: userID}
}

// Reload fetches plant types, materials and plants concurrently. The
// returned error joins every failure in that order; use LoadFailures to
// split it.
func (page *PlantsPage) Reload(ctx context.Context) error {
	var (
		plantTypes []models.PlantType
		materials  []models.Material
		plants     []models.UserPlant
		failures   [3]error
	)

	var group errgroup.Group
	group.Go(func() error {
		plantTypes, failures[0] = page.source.ListPlantTypes(ctx)
		return nil
	})
	group.Go(func() error {
		materials, failures[1] = page.source.ListMaterials(ctx)
		return nil
	})
	group.Go(func() error {
		plants, failures[2] = page.source.ListUserPlants(ctx, page.userID)
		return nil
	})
	_ = group.Wait()

	page.plantTypes = plantTypes
	page.materials = materials
	page.plants = plants
	return errors.Join(failures[:]...)
}

func (page *PlantsPage) PlantTypes() []models.PlantType {
	return page.plantTypes
}

func (page *PlantsPage) Materials() []models.Material {
	return page.materials
}

func (page *PlantsPage) Plants() []models.UserPlant {
	return page.plants
}

// LoadFailures splits an error returned by a page Reload into the individual
// fetch failures.
func LoadFailures(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
