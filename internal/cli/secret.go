package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/wateringdiary/webapp/internal/security"
)

func RunGenerateSecretCommand(length int, out io.Writer) error {
	key, err := security.NewSecretKey(length)
	if err != nil {
		return errors.Wrap(err, "generate secret key")
	}
	fmt.Fprintln(out, key)
	return nil
}
