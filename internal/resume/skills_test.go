package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "nothing found",
			text: "Jane Roe\nGardener",
			want: []string{SkillsNotFound},
		},
		{
			name: "vocabulary order not text order",
			text: "I write docker files and python and JAVA",
			want: []string{"Java", "Python", "Docker"},
		},
		{
			name: "substring matches overlap",
			text: "Spring Boot",
			want: []string{"Spring", "Spring Boot"},
		},
		{
			name: "section tokens follow vocabulary hits",
			text: "Jane\nTechnical Skills\nGo, Rust | Kubernetes • Terraform: gRPC\nC, R\nExperience\nAcme, Ruby",
			want: []string{"Go", "Rust", "Kubernetes", "Terraform", "gRPC"},
		},
		{
			name: "duplicates are kept",
			text: "Skills\nPython, Docker\nWork history",
			want: []string{"Python", "Docker", "Python", "Docker"},
		},
		{
			name: "section without end runs to the bottom",
			text: "Skills\nElixir\n\nErlang",
			want: []string{"Elixir", "Erlang"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSkills(tt.text))
		})
	}
}

func TestExtractSkills_NonASCIITokenLength(t *testing.T) {
	// a single non-ASCII letter is still one character
	assert.Equal(t, []string{"Ökonomie"}, ExtractSkills("Skills\nÖ, Ökonomie"))
}

func TestExtractSkills_AstralTokenCountsAsTwoUnits(t *testing.T) {
	assert.Equal(t, []string{"🚀", "Go"}, ExtractSkills("Skills\n🚀, Go"))
}
