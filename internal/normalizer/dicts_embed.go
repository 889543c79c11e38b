package normalizer

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed data/dictionaries.yaml
var dictionariesYAML []byte

// SeasonKeywords holds the priority-ordered keyword lists for season
// detection.
type SeasonKeywords struct {
	Winter    []string `yaml:"winter"`
	AllSeason []string `yaml:"all_season"`
	Summer    []string `yaml:"summer"`
}

// CommonValues are the fallback candidates proposed when a field could not
// be extracted from the text.
type CommonValues struct {
	Sizes        []string `yaml:"sizes"`
	LoadIndexes  []int    `yaml:"load_indexes"`
	SpeedRatings []string `yaml:"speed_ratings"`
}

// Dictionaries contains the fixed matching lists used by the extractor.
type Dictionaries struct {
	Brands   []string       `yaml:"brands"`
	Patterns []string       `yaml:"patterns"`
	Seasons  SeasonKeywords `yaml:"season_keywords"`
	Common   CommonValues   `yaml:"common_values"`
}

// LoadDictionaries loads the embedded dictionary file.
func LoadDictionaries() (*Dictionaries, error) {
	d := &Dictionaries{}
	if err := yaml.Unmarshal(dictionariesYAML, d); err != nil {
		return nil, err
	}
	return d, nil
}
