package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamadmonzer-a/railwayBackend/pdftest"
)

func TestPDFService_ExtractText(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected string
	}{
		{name: "single page", pages: []string{"Hello"}, expected: "Hello"},
		{name: "pages in order", pages: []string{"First page", "Second page", "Third page"}, expected: "First page\nSecond page\nThird page"},
		{name: "empty pages skipped", pages: []string{"", "Alpha", "", "Beta", ""}, expected: "Alpha\nBeta"},
		{name: "no text at all", pages: []string{"", ""}, expected: ""},
		{name: "page text kept as extracted", pages: []string{"Hello  ", "World"}, expected: "Hello  \nWorld"},
		{name: "blank page keeps its line", pages: []string{"Alpha", "   ", "Beta"}, expected: "Alpha\n   \nBeta"},
		{name: "escaped characters", pages: []string{`f(x) = a\b`}, expected: `f(x) = a\b`},
	}

	svc := NewPDFService()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, err := svc.ExtractText(pdftest.Build(tc.pages...))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, text)
		})
	}
}

func TestPDFService_ExtractText_Invalid(t *testing.T) {
	svc := NewPDFService()

	inputs := map[string][]byte{
		"empty":     nil,
		"not a pdf": []byte("this is definitely not a PDF document, just some plain text bytes"),
		"truncated": pdftest.Build("Hello")[:40],
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			text, err := svc.ExtractText(data)
			assert.Error(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestStripNUL(t *testing.T) {
	assert.Equal(t, "  ab\n", stripNUL("  a\u0000b\n"))
}
