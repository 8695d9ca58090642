package idgenerator_test

import (
	"regexp"
	"testing"

	"github.com/lafise/go-fp-transfer/internal/common/idgenerator"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	t.Run("created new id with prefix", func(t *testing.T) {
		generator := idgenerator.New()
		id := generator.Generate(idgenerator.PrefixCorrelation)
		assert.Regexp(t, regexp.MustCompile(`^CORR-\d{13}[A-Za-z0-9_-]{22}$`), id)
	})

	t.Run("created new id without prefix", func(t *testing.T) {
		generator := idgenerator.New()
		id := generator.Generate()
		assert.Regexp(t, regexp.MustCompile(`^\d{13}[A-Za-z0-9_-]{22}$`), id)
	})

	t.Run("ids are unique", func(t *testing.T) {
		generator := idgenerator.New()
		assert.NotEqual(t, generator.Generate("REQ"), generator.Generate("REQ"))
	})
}
