package gamedata

import (
	"errors"
	"math/rand"
)

// NamesFile represents the structure of names.json.
type NamesFile struct {
	First []string `json:"first"`
	Last  []string `json:"last"`
}

// NameGenerator produces colonist names from the embedded name pools.
type NameGenerator struct {
	first []string
	last  []string
}

// LoadNameGenerator loads the name pools from the embedded names.json.
func LoadNameGenerator() (*NameGenerator, error) {
	file, err := Load[NamesFile]("names.json")
	if err != nil {
		return nil, err
	}
	if len(file.First) == 0 || len(file.Last) == 0 {
		return nil, errors.New("names.json must contain at least one first and last name")
	}
	return &NameGenerator{first: file.First, last: file.Last}, nil
}

// MustLoadNameGenerator loads the name pools, panicking on error.
func MustLoadNameGenerator() *NameGenerator {
	gen, err := LoadNameGenerator()
	if err != nil {
		panic(err)
	}
	return gen
}

// Generate returns a random "First Last" name using the supplied rng.
func (g *NameGenerator) Generate(rng *rand.Rand) string {
	return g.first[rng.Intn(len(g.first))] + " " + g.last[rng.Intn(len(g.last))]
}
