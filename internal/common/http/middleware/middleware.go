package middleware

import (
	"github.com/lafise/go-fp-transfer/internal/common/idgenerator"
	"github.com/lafise/go-fp-transfer/internal/config"
)

type AppMiddleware struct {
	conf        config.Config
	idGenerator idgenerator.Generator
}

func NewMiddleware(conf config.Config, idGenerator idgenerator.Generator) AppMiddleware {
	return AppMiddleware{
		conf:        conf,
		idGenerator: idGenerator,
	}
}
