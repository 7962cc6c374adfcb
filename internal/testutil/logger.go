package testutil

import (
	"io"

	"github.com/ecomarket/storefront-core/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(0, io.Discard)
}
