package site

import (
	"testing"
	"time"

	"github.com/goccy/go-yaml"
)

func TestPage_Paths(t *testing.T) {
	tests := []struct {
		path   string
		output string
		url    string
		title  string
	}{
		{"index.md", "index.json", "index.html", "Index"},
		{"blog/hello-world.md", "blog/hello-world.json", "blog/hello-world.html", "Hello World"},
		{"notes/snake_case_name.markdown", "notes/snake_case_name.json", "notes/snake_case_name.html", "Snake Case Name"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p := &Page{Path: tt.path}

			if got := p.OutputPath(".json"); got != tt.output {
				t.Errorf("OutputPath = %q, want %q", got, tt.output)
			}

			if got := p.URLPath(); got != tt.url {
				t.Errorf("URLPath = %q, want %q", got, tt.url)
			}

			if got := p.DisplayTitle(); got != tt.title {
				t.Errorf("DisplayTitle = %q, want %q", got, tt.title)
			}
		})
	}
}

func TestPage_DisplayTitlePrefersFrontMatter(t *testing.T) {
	p := &Page{Path: "a-b.md", FrontMatter: FrontMatter{Title: "Explicit"}}
	if got := p.DisplayTitle(); got != "Explicit" {
		t.Errorf("DisplayTitle = %q", got)
	}
}

func TestIsMarkdown(t *testing.T) {
	tests := map[string]bool{
		"a.md":       true,
		"a.MD":       true,
		"a.markdown": true,
		"a.txt":      false,
		"md":         false,
	}

	for name, want := range tests {
		if got := IsMarkdown(name); got != want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFrontMatter_UnmarshalYAML(t *testing.T) {
	src := `
title: Hello
description: A greeting
date: 2024-02-29
tags: [go, yaml]
layout: post
draft: true
`

	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(src), &fm); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if fm.Title != "Hello" || fm.Description != "A greeting" || fm.Layout != "post" || !fm.Draft {
		t.Errorf("front matter = %+v", fm)
	}

	if !fm.HasDate() || !fm.DateOrZero().Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", fm.Date)
	}

	if !fm.HasTag("yaml") || fm.HasTag("rust") {
		t.Errorf("tags = %v", fm.Tags)
	}
}

func TestFrontMatter_UnmarshalYAMLInvalidDate(t *testing.T) {
	var fm FrontMatter
	if err := yaml.Unmarshal([]byte("date: someday\n"), &fm); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestFrontMatter_NoDate(t *testing.T) {
	var fm FrontMatter
	if fm.HasDate() || !fm.DateOrZero().IsZero() {
		t.Error("zero front matter reports a date")
	}
}
