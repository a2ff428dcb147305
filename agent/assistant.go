package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/aurora/date"
	"go.uber.org/zap"
)

// Fixed answers used when the model cannot be reached or cannot answer.
const (
	NoKeyReply = "請先配置 API Key。"
	EmptyReply = "系統暫忙。"
	ErrorReply = "發生錯誤。"
)

var (
	// NoKeyForecast is returned without a network call when no API key is configured.
	NoKeyForecast = Forecast{Chance: 75, KpIndex: 4, Description: "極光女神正在趕來的路上。"}
	// CloudyForecast is returned when the forecast request fails.
	CloudyForecast = Forecast{Chance: 50, KpIndex: 3, Description: "今晚雲層較厚，建議稍後再觀察。"}
)

// ErrNoKey is the Err of results produced without a model.
var ErrNoKey = errors.New("no API key configured")

// Forecast is the predicted aurora visibility of a night.
type Forecast struct {
	Chance      int    `json:"chance"`  // percent
	KpIndex     int    `json:"kpIndex"` // 1 to 9
	Description string `json:"description"`
}

// Assistant answers free questions and predicts aurora visibility. Every
// failure resolves to a fixed fallback, an Assistant never returns an error.
type Assistant struct {
	model      Model // nil when no API key is configured
	guide      *Expert
	forecaster *Expert
	log        *zap.Logger
}

// NewAssistant returns an assistant over model. A nil model answers with the
// "no key" fallbacks and never reaches the network.
func NewAssistant(model Model, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{
		model:      model,
		guide:      NewGuide(),
		forecaster: NewForecaster(),
		log:        log,
	}
}

// Ask returns the guide's answer to prompt.
func (a *Assistant) Ask(ctx context.Context, prompt string) Result[string] {
	if a.model == nil {
		return fallback(NoKeyReply, ErrNoKey)
	}
	text, err := a.model.Generate(ctx, a.guide, prompt)
	if err != nil {
		a.log.Warn("chat request failed", zap.Error(err))
		return fallback(ErrorReply, err)
	}
	if strings.TrimSpace(text) == "" {
		a.log.Warn("chat request got an empty answer")
		return fallback(EmptyReply, errors.New("empty answer"))
	}
	return resolved(text)
}

// Forecast predicts the aurora visibility at location on the night of d.
func (a *Assistant) Forecast(ctx context.Context, d date.Date, location string) Result[Forecast] {
	if a.model == nil {
		return fallback(NoKeyForecast, ErrNoKey)
	}
	prompt := fmt.Sprintf("Predict Aurora visibility for %s on %s. Give me a percentage chance and a short poetic description in Traditional Chinese.", location, d)
	text, err := a.model.Generate(ctx, a.forecaster, prompt)
	if err != nil {
		a.log.Warn("forecast request failed", zap.Error(err), zap.Stringer("date", d))
		return fallback(CloudyForecast, err)
	}
	f, err := ParseForecast(text)
	if err != nil {
		a.log.Warn("forecast answer is invalid", zap.Error(err), zap.String("answer", text))
		return fallback(CloudyForecast, err)
	}
	return resolved(f)
}

// ParseForecast reads a forecast answer. Chance is bounded to 0..100 and the
// KP index to 1..9.
func ParseForecast(text string) (Forecast, error) {
	var jobj any
	if err := json.Unmarshal([]byte(text), &jobj); err != nil {
		return Forecast{}, fmt.Errorf("forecast is not JSON: %w", err)
	}
	chance, err := number(jobj, "$.chance")
	if err != nil {
		return Forecast{}, err
	}
	kp, err := number(jobj, "$.kpIndex")
	if err != nil {
		return Forecast{}, err
	}
	jdesc, err := jsonpath.Get("$.description", jobj)
	if err != nil {
		return Forecast{}, fmt.Errorf("forecast has no description: %w", err)
	}
	desc, ok := jdesc.(string)
	if !ok {
		return Forecast{}, fmt.Errorf("forecast description is not a string: %v", jdesc)
	}
	return Forecast{
		Chance:      min(max(int(chance+0.5), 0), 100),
		KpIndex:     min(max(int(kp+0.5), 1), 9),
		Description: desc,
	}, nil
}

func number(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("forecast has no %q: %w", path, err)
	}
	// jsonpath may answer a list of one value
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	v, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("forecast %q is not a number: %v", path, jval)
	}
	return v, nil
}
