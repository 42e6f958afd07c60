package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/models"
)

// ReferenceLister is the part of the REST client check-api needs.
type ReferenceLister interface {
	BaseURL() string
	ListPlantTypes(ctx context.Context) ([]models.PlantType, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
}

// RunCheckAPICommand loads both reference lists to prove the REST API is
// reachable and speaks the expected format.
func RunCheckAPICommand(ctx context.Context, client ReferenceLister, logger *zap.Logger, out io.Writer) error {
	plantTypes, err := client.ListPlantTypes(ctx)
	if err != nil {
		return errors.Wrapf(err, "api at %s is not usable", client.BaseURL())
	}
	materials, err := client.ListMaterials(ctx)
	if err != nil {
		return errors.Wrapf(err, "api at %s is not usable", client.BaseURL())
	}

	logger.Info("api reachable",
		zap.String("base_url", client.BaseURL()),
		zap.Int("plant_types", len(plantTypes)),
		zap.Int("materials", len(materials)),
	)
	fmt.Fprintf(out, "API %s is reachable: %d plant type(s), %d material(s)\n", client.BaseURL(), len(plantTypes), len(materials))
	return nil
}
