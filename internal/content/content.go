// Package content holds the fixed payloads served by the JSON API.
package content

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed content.toml
var raw string

type Course struct {
	Code         string   `toml:"code" json:"code"`
	Title        string   `toml:"title" json:"title"`
	Provider     string   `toml:"provider" json:"provider"`
	Term         string   `toml:"term" json:"term"`
	Modules      []string `toml:"modules" json:"modules"`
	FinalProject string   `toml:"final_project" json:"final_project"`
}

type Education struct {
	Institution string `toml:"institution" json:"institution"`
	Degree      string `toml:"degree" json:"degree"`
	Years       string `toml:"years" json:"years"`
}

type Experience struct {
	Role         string   `toml:"role" json:"role"`
	Organization string   `toml:"organization" json:"organization"`
	Years        string   `toml:"years" json:"years"`
	Highlights   []string `toml:"highlights" json:"highlights"`
}

type Resume struct {
	Name       string       `toml:"name" json:"name"`
	Headline   string       `toml:"headline" json:"headline"`
	Location   string       `toml:"location" json:"location"`
	Summary    string       `toml:"summary" json:"summary"`
	Skills     []string     `toml:"skills" json:"skills"`
	Education  []Education  `toml:"education" json:"education"`
	Experience []Experience `toml:"experience" json:"experience"`
}

type Content struct {
	Course Course `toml:"course"`
	Resume Resume `toml:"resume"`
}

// Load decodes the embedded content file.
func Load() (*Content, error) {
	var c Content
	if _, err := toml.Decode(raw, &c); err != nil {
		return nil, fmt.Errorf("decode content failed: %w", err)
	}
	return &c, nil
}
