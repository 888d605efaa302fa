package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestToAttributes(t *testing.T) {
	t.Parallel()

	attrs := toAttributes("ok", true, "count", 3, "err", errors.New("boom"), "dangling")
	assert.Equal(t, []attribute.KeyValue{
		attribute.Bool("ok", true),
		attribute.Int("count", 3),
		attribute.String("err", "boom"),
		attribute.String("dangling", missingAttributeValue),
	}, attrs)

	attrs = toAttributes(42, "value")
	assert.Equal(t, []attribute.KeyValue{
		attribute.String(invalidAttributeKey, "[42 value]"),
	}, attrs)
}
