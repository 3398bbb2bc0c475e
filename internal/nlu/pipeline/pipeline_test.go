package pipeline

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-nlu/internal/common/logger"
	"commerce-nlu/internal/nlu/intent"
	"commerce-nlu/internal/nlu/langid"
	"commerce-nlu/internal/nlu/lexicon"
)

func newTestPipeline(t *testing.T) *Pipeline {
	opts := DefaultOptions()
	opts.Entities.Now = func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) }
	return New(lexicon.Default(), opts, logger.NewTestLogger(t))
}

// ==========================
// End to end
// ==========================

func TestPipeline_Run(t *testing.T) {
	p := newTestPipeline(t)

	tests := []struct {
		name         string
		input        string
		wantIntent   intent.Intent
		wantLanguage langid.Language
		wantEntities map[string]interface{}
	}{
		{
			name:         "english edit stock",
			input:        "Update stock of Sugar to 15",
			wantIntent:   intent.EditStock,
			wantLanguage: langid.English,
			wantEntities: map[string]interface{}{"name": "sugar", "standardized_name": "चीनी", "stock": 15},
		},
		{
			name:         "hindi edit stock",
			input:        "चीनी का स्टॉक 15 करो",
			wantIntent:   intent.EditStock,
			wantLanguage: langid.Hindi,
			wantEntities: map[string]interface{}{"name": lexicon.NFC("चीनी"), "stock": 15},
		},
		{
			name:         "relative period",
			input:        "Show orders from last week",
			wantIntent:   intent.GetOrders,
			wantLanguage: langid.English,
			wantEntities: map[string]interface{}{"range": "last_week"},
		},
		{
			name:         "reversed custom range",
			input:        "Show sales from 31/01/2023 to 01/01/2023",
			wantIntent:   intent.GetReport,
			wantLanguage: langid.English,
			wantEntities: map[string]interface{}{
				"range":          "custom",
				"start_date":     "01/01/2023",
				"end_date":       "31/01/2023",
				"reversed_dates": true,
			},
		},
		{
			name:         "add product",
			input:        "add product Rice, price 50, stock 10",
			wantIntent:   intent.AddProduct,
			wantLanguage: langid.English,
			wantEntities: map[string]interface{}{"name": "rice", "price": 50.0, "quantity": 10, "unit": "kg"},
		},
		{
			name:         "low stock default threshold",
			input:        "show low stock items",
			wantIntent:   intent.GetLowStock,
			wantLanguage: langid.English,
			wantEntities: map[string]interface{}{"threshold": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Run(tt.input)
			assert.Equal(t, tt.wantIntent, got.Intent)
			assert.Equal(t, tt.wantLanguage, got.Language)
			assert.False(t, got.HasNegation)
			assert.Empty(t, got.Error)
			for k, v := range tt.wantEntities {
				assert.Equal(t, v, got.Entities[k], "entity %s", k)
			}
		})
	}
}

func TestPipeline_Negation(t *testing.T) {
	p := newTestPipeline(t)

	got := p.Run("I don't want rice")
	assert.True(t, got.HasNegation)
	assert.Equal(t, intent.None, got.Intent)
	assert.NotNil(t, got.Entities)
	assert.Empty(t, got.Entities)
}

func TestPipeline_UnknownAndEmpty(t *testing.T) {
	p := newTestPipeline(t)

	for _, input := range []string{"", "   ", "what is the weather"} {
		t.Run(input, func(t *testing.T) {
			got := p.Run(input)
			assert.Equal(t, intent.Unknown, got.Intent)
			assert.NotNil(t, got.Entities)
			assert.Empty(t, got.Error)
		})
	}
}

func TestPipeline_IncompleteAddIsNotAnError(t *testing.T) {
	p := newTestPipeline(t)

	got := p.Run("add rice")
	assert.Equal(t, intent.AddProduct, got.Intent)
	assert.NotNil(t, got.Entities)
	assert.Empty(t, got.Entities)
	assert.Empty(t, got.Error)
}

// ==========================
// Fault containment
// ==========================

func TestPipeline_FaultIsContained(t *testing.T) {
	p := &Pipeline{logger: logger.NewNoOpLogger()}

	var got ParsedCommand
	require.NotPanics(t, func() {
		got = p.RunCommand(RawCommand{Text: "add sugar 40 10", CorrelationID: "abc"})
	})
	assert.Equal(t, intent.Unknown, got.Intent)
	assert.Equal(t, langid.English, got.Language)
	assert.Contains(t, got.Error, ErrInternalParsingFault)
	assert.Equal(t, "abc", got.CorrelationID)
	assert.NotNil(t, got.Entities)
}

func TestPipeline_ConcurrentUse(t *testing.T) {
	p := newTestPipeline(t)
	inputs := []string{"Update stock of Sugar to 15", "चीनी का स्टॉक 15 करो", "Show orders from last week"}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got := p.Run(inputs[i%len(inputs)])
			assert.NotEqual(t, intent.Unknown, got.Intent)
		}(i)
	}
	wg.Wait()
}

func TestParsedCommand_JSON(t *testing.T) {
	p := newTestPipeline(t)

	got := p.RunCommand(RawCommand{Text: "Show orders from last week", CorrelationID: "c-1"})
	data, err := json.Marshal(got)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "get_orders", decoded["intent"])
	assert.Equal(t, "en", decoded["language"])
	assert.Equal(t, "c-1", decoded["correlationId"])
	assert.Equal(t, map[string]interface{}{"range": "last_week"}, decoded["entities"])
	assert.NotContains(t, decoded, "error")
}
