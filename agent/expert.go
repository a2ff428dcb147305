package agent

import (
	"google.golang.org/genai"
)

// Expert is a persona of the assistant: a system instruction and an output
// format, sent with every request.
type Expert struct {
	Name   string                       `json:"name"`
	Config *genai.GenerateContentConfig `json:"config"`
}

func systemInstruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// NewGuide returns the chat persona, a Canada travel and aurora photography
// expert answering in Traditional Chinese.
func NewGuide() *Expert {
	return &Expert{
		Name: "Guide",
		Config: &genai.GenerateContentConfig{
			SystemInstruction: systemInstruction(
				"你是一位加拿大旅遊專家與極光攝影大師。" +
					"請用親切、專業且夢幻的口吻回答問題，使用繁體中文，字數請控制在 200 字以內。" +
					"如果提到氣溫，請提醒使用者注意保溫。"),
		},
	}
}

// NewForecaster returns the persona that predicts the aurora visibility as a
// JSON object.
func NewForecaster() *Expert {
	return &Expert{
		Name: "Forecaster",
		Config: &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"chance": {
						Type:        genai.TypeNumber,
						Description: "Percentage chance (0-100)",
					},
					"kpIndex": {
						Type:        genai.TypeNumber,
						Description: "Predicted KP Index (1-9)",
					},
					"description": {
						Type: genai.TypeString,
					},
				},
				Required: []string{"chance", "kpIndex", "description"},
			},
		},
	}
}
