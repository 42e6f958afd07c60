package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wateringdiary/webapp/internal/services"
)

const referencesPath = "/references"

func (handler *Handler) ShowReferences(c *fiber.Ctx) error {
	tab := referencesTabPlantTypes
	if c.Query("tab") == referencesTabMaterials {
		tab = referencesTabMaterials
	}
	return handler.renderReferences(c, tab, 0)
}

func (handler *Handler) ShowPlantTypeDetail(c *fiber.Ctx) error {
	id, _ := parsePathID(c, "id")
	return handler.renderReferences(c, referencesTabPlantTypes, id)
}

func (handler *Handler) ShowMaterialDetail(c *fiber.Ctx) error {
	id, _ := parsePathID(c, "id")
	return handler.renderReferences(c, referencesTabMaterials, id)
}

// renderReferences draws both reference lists. A detail id that matches
// nothing leaves the page without a detail panel.
func (handler *Handler) renderReferences(c *fiber.Ctx, tab string, detailID int64) error {
	messages := currentMessages(c)
	language := handler.language(c)
	flash := handler.popFlashCookie(c)

	var extra []Banner
	page := services.NewReferencesPage(handler.api)
	if err := page.Reload(c.UserContext()); err != nil {
		failures := services.LoadFailures(err)
		for _, failure := range failures {
			handler.logAPIFailure(c, failure)
		}
		extra = append(extra, newBanner(bannerKindError, loadFailureMessage(messages, failures[0])))
	}

	var detail *referenceDetail
	if detailID > 0 {
		switch tab {
		case referencesTabPlantTypes:
			if plantType, ok := page.PlantType(detailID); ok {
				detail = plantTypeDetail(plantType, translateMessage(messages, "references.no_description"))
			}
		case referencesTabMaterials:
			if material, ok := page.Material(detailID); ok {
				detail = materialDetail(material)
			}
		}
	}

	return handler.render(c, "references", fiber.Map{
		"Title":      localizedPageTitle(messages, "meta.title.references", "Watering Diary | References"),
		"Tab":        tab,
		"PlantTypes": buildPlantTypeRows(page.PlantTypes(language)),
		"Materials":  buildMaterialRows(page.Materials(language)),
		"Detail":     detail,
		"Banners":    bannersFromFlash(flash, extra...),
	})
}
