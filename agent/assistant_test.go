package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/etnz/aurora/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel answers every request with text and err.
type fakeModel struct {
	mu      sync.Mutex
	text    string
	err     error
	calls   int
	experts []string
	prompts []string
}

func (m *fakeModel) Generate(ctx context.Context, e *Expert, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.experts = append(m.experts, e.Name)
	m.prompts = append(m.prompts, prompt)
	return m.text, m.err
}

func TestAsk(t *testing.T) {
	testCases := []struct {
		name      string
		model     *fakeModel
		wantState State
		want      string
	}{
		{"answer", &fakeModel{text: "記得多穿一點！"}, Resolved, "記得多穿一點！"},
		{"empty", &fakeModel{text: "  "}, Fallback, EmptyReply},
		{"error", &fakeModel{err: errors.New("quota")}, Fallback, ErrorReply},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAssistant(tc.model, nil)
			r := a.Ask(context.Background(), "黃刀鎮冷嗎？")
			assert.Equal(t, tc.wantState, r.State)
			assert.Equal(t, tc.want, r.Value)
			assert.Equal(t, []string{"Guide"}, tc.model.experts)
			assert.True(t, r.Done())
		})
	}
}

func TestAskWithoutKey(t *testing.T) {
	r := NewAssistant(nil, nil).Ask(context.Background(), "hello")
	assert.Equal(t, Fallback, r.State)
	assert.Equal(t, "請先配置 API Key。", r.Value)
	assert.ErrorIs(t, r.Err, ErrNoKey)
}

func TestForecastWithoutKey(t *testing.T) {
	r := NewAssistant(nil, nil).Forecast(context.Background(), date.New(2024, 2, 24), "Yellowknife")
	assert.Equal(t, Fallback, r.State)
	assert.Equal(t, Forecast{Chance: 75, KpIndex: 4, Description: "極光女神正在趕來的路上。"}, r.Value)
}

func TestForecast(t *testing.T) {
	testCases := []struct {
		name      string
		model     *fakeModel
		wantState State
		want      Forecast
	}{
		{
			name:      "answer",
			model:     &fakeModel{text: `{"chance": 82, "kpIndex": 5, "description": "綠光在天際舞動"}`},
			wantState: Resolved,
			want:      Forecast{Chance: 82, KpIndex: 5, Description: "綠光在天際舞動"},
		},
		{
			name:      "bounded",
			model:     &fakeModel{text: `{"chance": 140.2, "kpIndex": 0, "description": "x"}`},
			wantState: Resolved,
			want:      Forecast{Chance: 100, KpIndex: 1, Description: "x"},
		},
		{
			name:      "invalid json",
			model:     &fakeModel{text: `chance: high`},
			wantState: Fallback,
			want:      CloudyForecast,
		},
		{
			name:      "missing field",
			model:     &fakeModel{text: `{"chance": 20}`},
			wantState: Fallback,
			want:      CloudyForecast,
		},
		{
			name:      "error",
			model:     &fakeModel{err: context.DeadlineExceeded},
			wantState: Fallback,
			want:      CloudyForecast,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewAssistant(tc.model, nil).Forecast(context.Background(), date.New(2024, 2, 25), "Yellowknife")
			assert.Equal(t, tc.wantState, r.State)
			assert.Equal(t, tc.want, r.Value)
			require.Len(t, tc.model.prompts, 1)
			assert.Contains(t, tc.model.prompts[0], "Yellowknife on 2024-02-25")
			assert.Equal(t, []string{"Forecaster"}, tc.model.experts)
		})
	}
}

func TestForecasterAsksForJSON(t *testing.T) {
	cfg := NewForecaster().Config
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.ResponseSchema)
	assert.ElementsMatch(t, []string{"chance", "kpIndex", "description"}, cfg.ResponseSchema.Required)
}
