package vercheck

import (
	"github.com/anchore/vercheck/internal/log"
	"github.com/anchore/vercheck/vercheck/logger"
)

func SetLogger(logger logger.Logger) {
	log.Log = logger
}
