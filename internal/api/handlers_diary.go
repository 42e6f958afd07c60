package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/apiclient"
	"github.com/wateringdiary/webapp/internal/models"
	"github.com/wateringdiary/webapp/internal/services"
)

const diaryPath = "/diary"

func (handler *Handler) ShowDiary(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return redirectOrJSON(c, loginPath)
	}
	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)

	var extra []Banner
	filterView := diaryFilterView{
		Plant: strings.TrimSpace(c.Query("plant")),
		From:  strings.TrimSpace(c.Query("from")),
		To:    strings.TrimSpace(c.Query("to")),
	}
	filter, err := services.ParseRecordFilter(filterView.Plant, filterView.From, filterView.To)
	if err != nil {
		extra = append(extra, newBanner(bannerKindError, translateMessage(messages, recordFilterErrorKey(err))))
		filter = services.RecordFilter{}
	}
	if filter.IsReversed() {
		extra = append(extra, newBanner(bannerKindWarning, translateMessage(messages, "diary.filter.warning.range")))
	}
	filterView.Active = !filter.IsEmpty()

	page := services.NewDiaryPage(handler.api, session.UserID, handler.fanOutLimit)
	loadErr := page.Reload(c.UserContext())
	if loadErr != nil {
		handler.logAPIFailure(c, loadErr)
		extra = append(extra, newBanner(bannerKindError, loadFailureMessage(messages, loadErr)))
	}
	if skipped := page.Skipped(); len(skipped) > 0 {
		ids := make([]int64, 0, len(skipped))
		for _, plant := range skipped {
			ids = append(ids, plant.PlantID)
		}
		handler.logger.Warn("diary records partially loaded",
			zap.String("request_id", requestID(c)),
			zap.Int64("user_id", session.UserID),
			zap.Int64s("skipped_plant_ids", ids),
		)
		extra = append(extra, newBanner(bannerKindWarning, translateMessagef(messages, "diary.warning.skipped", len(skipped))))
	}

	var form *recordFormView
	if loadErr == nil {
		var formBanner *Banner
		form, formBanner, err = handler.diaryForm(c, session, page.Plants(), messages)
		if errors.Is(err, services.ErrNotOwned) {
			return handler.rejectForeign(c, session)
		}
		if formBanner != nil {
			extra = append(extra, *formBanner)
		}
	}

	unknown := unknownLabel(messages)
	return handler.render(c, "diary", fiber.Map{
		"Title":     localizedPageTitle(messages, "meta.title.diary", "Watering Diary | Diary"),
		"Rows":      buildRecordRows(messages, page.View(filter), page.Plants(), unknown),
		"HasAny":    len(page.Records()) > 0,
		"Plants":    services.SortPlantsByName(page.Plants(), handler.language(c)),
		"Filter":    filterView,
		"ExportURL": filterView.exportURL(),
		"Form":      form,
		"Banners":   bannersFromFlash(flash, extra...),
	})
}

// diaryForm resolves the add/edit form requested by the query string.
// plants is the session user's plant list; a record or plant outside it
// yields services.ErrNotOwned.
func (handler *Handler) diaryForm(c *fiber.Ctx, session *Session, plants []models.UserPlant, messages map[string]string) (*recordFormView, *Banner, error) {
	if rawID := c.Query("edit"); rawID != "" {
		recordID, ok := parsePositiveID(rawID)
		if !ok {
			return nil, nil, nil
		}
		record, err := handler.api.GetRecord(c.UserContext(), recordID)
		if err != nil {
			handler.logAPIFailure(c, err)
			banner := newBanner(bannerKindError, apiFailureMessage(messages, err, "errors.load.record"))
			return nil, &banner, nil
		}
		if err := services.OwnedRecord(plants, session.UserID, record); err != nil {
			return nil, nil, err
		}
		record.Time = services.ShortClock(record.Time)
		return &recordFormView{
			Editing: true,
			Action:  diaryPath + "/" + strconv.FormatInt(record.ID, 10),
			Record:  record,
		}, nil, nil
	}

	if c.Query("add") == "" && c.Query("add_plant") == "" {
		return nil, nil, nil
	}

	now := handler.now()
	form := &recordFormView{
		Action: diaryPath,
		Record: models.WateringRecord{
			Date: services.TodayString(now, handler.location),
			Time: services.ClockString(now, handler.location),
		},
	}
	if plantID, ok := parsePositiveID(c.Query("add_plant")); ok {
		if _, err := services.OwnedPlant(plants, session.UserID, plantID); err != nil {
			return nil, nil, err
		}
		form.Record.UserPlantID = plantID
		form.Recommendation = handler.recommendation(c, plantID)
	}
	return form, nil, nil
}

// recommendation returns nil when the API cannot compute one; the panel is
// then simply not shown.
func (handler *Handler) recommendation(c *fiber.Ctx, plantID int64) *models.Recommendation {
	recommendation, err := handler.api.Recommend(c.UserContext(), plantID)
	if err != nil {
		handler.logAPIFailure(c, err)
		return nil
	}
	return &recommendation
}

func (handler *Handler) DiaryRecommendation(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	rawPlant := c.Query("plant")
	if rawPlant == "" {
		rawPlant = c.Query("user_plant_id")
	}
	plantID, ok := parsePositiveID(rawPlant)
	if !ok {
		return handler.renderPartial(c, "recommendation_partial", fiber.Map{})
	}
	if _, err := handler.authorizePlant(c, session, plantID); err != nil {
		if errors.Is(err, services.ErrNotOwned) {
			return handler.rejectForeign(c, session)
		}
		handler.logAPIFailure(c, err)
		return handler.renderPartial(c, "recommendation_partial", fiber.Map{})
	}
	return handler.renderPartial(c, "recommendation_partial", fiber.Map{
		"Recommendation": handler.recommendation(c, plantID),
	})
}

// ExportDiary proxies the Excel export. The workbook is streamed to the
// browser as received.
func (handler *Handler) ExportDiary(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return redirectOrJSON(c, loginPath)
	}
	messages := currentMessages(c)

	filter, err := services.ParseRecordFilter(c.Query("plant"), c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondFormError(c, fiber.StatusBadRequest, translateMessage(messages, recordFilterErrorKey(err)), diaryPath)
	}

	query := apiclient.ExportQuery{UserID: session.UserID}
	if filter.PlantID != nil {
		if _, err := handler.authorizePlant(c, session, *filter.PlantID); err != nil {
			return handler.ownershipFailure(c, session, err, "diary.error.export", diaryPath)
		}
		query.PlantID = *filter.PlantID
	}
	if filter.From != nil {
		query.DateFrom = filter.From.Format(models.DateLayout)
	}
	if filter.To != nil {
		query.DateTo = filter.To.Format(models.DateLayout)
	}

	download, err := handler.api.ExportRecords(c.UserContext(), query)
	if err != nil {
		return handler.apiFailure(c, err, "diary.error.export", diaryPath)
	}

	c.Attachment(download.Filename)
	c.Set(fiber.HeaderContentType, download.ContentType)
	size := -1
	if download.ContentLength >= 0 {
		size = int(download.ContentLength)
	}
	return c.SendStream(download.Body, size)
}

func (handler *Handler) CreateRecord(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	formPath := diaryPath + "?add=1"

	input := recordInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	if plantID, ok := parsePositiveID(input.UserPlantID); ok {
		formPath = diaryPath + "?add_plant=" + strconv.FormatInt(plantID, 10)
	}
	payload, err := parseRecordCreateInput(input)
	if err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	if _, err := handler.authorizePlant(c, session, payload.UserPlantID); err != nil {
		return handler.ownershipFailure(c, session, err, "diary.error.create", formPath)
	}

	if _, err := handler.api.CreateRecord(c.UserContext(), payload); err != nil {
		return handler.apiFailure(c, err, "diary.error.create", formPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "diary.success.created"), diaryPath)
}

func (handler *Handler) UpdateRecord(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	recordID, ok := parsePathID(c, "id")
	if !ok {
		return handler.NotFound(c)
	}
	formPath := diaryPath + "?edit=" + strconv.FormatInt(recordID, 10)

	input := recordInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	patch, err := parseRecordPatchInput(input)
	if err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	if _, err := handler.authorizeRecord(c, session, recordID); err != nil {
		return handler.ownershipFailure(c, session, err, "diary.error.update", formPath)
	}

	if _, err := handler.api.UpdateRecord(c.UserContext(), recordID, patch); err != nil {
		return handler.apiFailure(c, err, "diary.error.update", formPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "diary.success.updated"), diaryPath)
}

func (handler *Handler) DeleteRecord(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	recordID, ok := parsePathID(c, "id")
	if !ok {
		return handler.NotFound(c)
	}
	if _, err := handler.authorizeRecord(c, session, recordID); err != nil {
		return handler.ownershipFailure(c, session, err, "diary.error.delete", diaryPath)
	}

	if err := handler.api.DeleteRecord(c.UserContext(), recordID); err != nil {
		handler.logAPIFailure(c, err)
		return handler.respondFormError(c, apiFailureStatus(err), translateMessage(currentMessages(c), "diary.error.delete"), diaryPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "diary.success.deleted"), diaryPath)
}
