// Package idgenerator builds correlation ids for outgoing directory calls and
// incoming BFF requests: an optional prefix, a millisecond timestamp and a
// raw-url base64 UUID.
package idgenerator

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PrefixCorrelation = "CORR"
	PrefixRequest     = "REQ"
)

type Generator interface {
	Generate(prefixes ...string) string
}

type IDGenerator struct {
	now func() time.Time
}

func New() Generator {
	return &IDGenerator{now: time.Now}
}

// Generate joins the prefixes with "-" and appends the timestamp and encoded UUID.
func (g *IDGenerator) Generate(prefixes ...string) string {
	var sb strings.Builder

	prefix := strings.Join(prefixes, "-")
	if prefix != "" {
		sb.WriteString(prefix)
		sb.WriteByte('-')
	}

	sb.WriteString(strconv.FormatInt(g.now().UnixMilli(), 10))

	id := uuid.New()
	sb.WriteString(base64.RawURLEncoding.EncodeToString(id[:]))

	return sb.String()
}
