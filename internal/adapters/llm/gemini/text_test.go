package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func content(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestJoinText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{"single part", content(genai.Text("Day 1: Louvre")), "Day 1: Louvre"},
		{"parts joined by newline", content(genai.Text("Day 1: Louvre"), genai.Text("Day 2: Orsay")), "Day 1: Louvre\nDay 2: Orsay"},
		{"blank parts skipped", content(genai.Text("  "), genai.Text("Day 1"), genai.Text("\n")), "Day 1"},
		{"non-text parts skipped", content(genai.Blob{MIMEType: "image/png", Data: []byte{1}}, genai.Text("Day 1")), "Day 1"},
		{"only blank parts", content(genai.Text(" "), genai.Text("")), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinText(tt.resp); got != tt.want {
				t.Fatalf("joinText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoinText_OnlyFirstCandidate(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: &genai.Content{Parts: []genai.Part{genai.Text("first")}}},
		{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
	}}
	if got := joinText(resp); got != "first" {
		t.Fatalf("joinText = %q, want %q", got, "first")
	}
}
