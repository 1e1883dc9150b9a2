package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestResponseTextJoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("halo "), genai.Text("dunia")}}},
		},
	}
	if got := responseText(resp); got != "halo dunia" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestResponseTextEmptyCases(t *testing.T) {
	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no text parts", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
		}},
	}
	for _, c := range cases {
		if got := responseText(c.resp); got != "" {
			t.Errorf("%s: expected empty text, got %q", c.name, got)
		}
	}
}
