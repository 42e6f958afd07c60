package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportQuery mirrors the query parameters of the Excel export endpoint.
// Zero values are left out of the request.
type ExportQuery struct {
	UserID   int64
	PlantID  int64
	DateFrom string
	DateTo   string
}

func (query ExportQuery) values() url.Values {
	values := url.Values{}
	if query.UserID > 0 {
		values.Set("userId", idSegment(query.UserID))
	}
	if query.PlantID > 0 {
		values.Set("plantId", idSegment(query.PlantID))
	}
	if query.DateFrom != "" {
		values.Set("dateFrom", query.DateFrom)
	}
	if query.DateTo != "" {
		values.Set("dateTo", query.DateTo)
	}
	return values
}

// Download is an open export response. The caller owns Body and must close it.
type Download struct {
	Filename      string
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

func (client *Client) ExportRecords(ctx context.Context, query ExportQuery) (*Download, error) {
	resp, err := client.send(ctx, call{
		op:       "export",
		resource: ResourceExport,
		method:   http.MethodGet,
		path:     []string{"watering-records", "export", "excel"},
		query:    query.values(),
	})
	if err != nil {
		return nil, err
	}

	contentType := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = defaultExportContentType
	}
	return &Download{
		Filename:      exportFilename(resp.Header.Get("Content-Disposition"), time.Now()),
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

func exportFilename(contentDisposition string, now time.Time) string {
	if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
		if name := strings.TrimSpace(params["filename"]); name != "" {
			return name
		}
	}
	return fmt.Sprintf("watering_records_%s.xlsx", now.Format("2006-01-02_15-04-05"))
}
