package apiclient

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Resource names the REST collection a call was made against. Pages use it to
// pick a resource specific message ("failed to load plant types").
type Resource string

const (
	ResourceSession        Resource = "session"
	ResourceUsers          Resource = "users"
	ResourcePlantTypes     Resource = "plant_types"
	ResourceMaterials      Resource = "materials"
	ResourcePlants         Resource = "plants"
	ResourceConditions     Resource = "conditions"
	ResourceRecords        Resource = "records"
	ResourceRecommendation Resource = "recommendation"
	ResourceExport         Resource = "export"
)

type Kind int

const (
	// KindTransport covers network failures and undecodable bodies.
	KindTransport Kind = iota + 1
	// KindStatus is a non-2xx answer from the API.
	KindStatus
)

var (
	ErrNotFound     = errors.New("apiclient: not found")
	ErrUnauthorized = errors.New("apiclient: unauthorized")
	ErrConflict     = errors.New("apiclient: conflict")
)

// Error is returned by every Client method. Status is zero for transport
// failures; Message holds the server supplied text when the body had one.
type Error struct {
	Op       string
	Resource Resource
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Op, e.Resource, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s %s: status %d", e.Op, e.Resource, e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrConflict:
		return e.Status == http.StatusConflict
	}
	return false
}

func (e *Error) Kind() Kind {
	if e.Status == 0 {
		return KindTransport
	}
	return KindStatus
}

// ServerMessage returns the message the API put in its error body, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message == "" {
		return "", false
	}
	return apiErr.Message, true
}

// ResourceOf reports which collection a failed call targeted.
func ResourceOf(err error) (Resource, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return "", false
	}
	return apiErr.Resource, true
}
