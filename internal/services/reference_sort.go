package services

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wateringdiary/webapp/internal/models"
)

func newNameCollator(lang string) *collate.Collator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Russian
	}
	return collate.New(tag, collate.IgnoreCase)
}

// SortPlantTypes orders plant types by name using the collation rules of
// lang. It sorts a copy.
func SortPlantTypes(plantTypes []models.PlantType, lang string) []models.PlantType {
	collator := newNameCollator(lang)
	sorted := slices.Clone(plantTypes)
	slices.SortFunc(sorted, func(left, right models.PlantType) int {
		if order := collator.CompareString(left.Name, right.Name); order != 0 {
			return order
		}
		return cmp.Compare(left.ID, right.ID)
	})
	return sorted
}

func SortMaterials(materials []models.Material, lang string) []models.Material {
	collator := newNameCollator(lang)
	sorted := slices.Clone(materials)
	slices.SortFunc(sorted, func(left, right models.Material) int {
		if order := collator.CompareString(left.Name, right.Name); order != 0 {
			return order
		}
		return cmp.Compare(left.ID, right.ID)
	})
	return sorted
}

// SortPlantsByName keeps select options stable across reloads.
func SortPlantsByName(plants []models.UserPlant, lang string) []models.UserPlant {
	collator := newNameCollator(lang)
	sorted := slices.Clone(plants)
	slices.SortFunc(sorted, func(left, right models.UserPlant) int {
		if order := collator.CompareString(left.Name, right.Name); order != 0 {
			return order
		}
		return cmp.Compare(left.ID, right.ID)
	})
	return sorted
}
