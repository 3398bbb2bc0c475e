package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCommandsParsed(t *testing.T) {
	before := testutil.ToFloat64(CommandsParsed.WithLabelValues("edit_stock", "hi"))
	CommandsParsed.WithLabelValues("edit_stock", "hi").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(CommandsParsed.WithLabelValues("edit_stock", "hi")))
}

func TestCacheLookups(t *testing.T) {
	CacheLookups.WithLabelValues("l1", "hit").Inc()
	CacheLookups.WithLabelValues("l2", "miss").Inc()
	assert.GreaterOrEqual(t, testutil.CollectAndCount(CacheLookups), 2)
}
