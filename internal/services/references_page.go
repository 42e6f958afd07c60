package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/wateringdiary/webapp/internal/models"
)

type ReferencesPage struct {
	source     ReferenceLister
	plantTypes []models.PlantType
	materials  []models.Material
}

func NewReferencesPage(source ReferenceLister) *ReferencesPage {
	return &ReferencesPage{source: source}
}

func (page *ReferencesPage) Reload(ctx context.Context) error {
	var (
		plantTypes []models.PlantType
		materials  []models.Material
		failures   [2]error
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
	_ = group.Wait()

	page.plantTypes = plantTypes
	page.materials = materials
	return errors.Join(failures[:]...)
}

// PlantTypes returns the plant types ordered by name for language.
func (page *ReferencesPage) PlantTypes(language string) []models.PlantType {
	return SortPlantTypes(page.plantTypes, language)
}

func (page *ReferencesPage) Materials(language string) []models.Material {
	return SortMaterials(page.materials, language)
}

func (page *ReferencesPage) PlantType(id int64) (models.PlantType, bool) {
	return PlantTypeByID(page.plantTypes, id)
}

func (page *ReferencesPage) Material(id int64) (models.Material, bool) {
	return MaterialByID(page.materials, id)
}
