/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package bingo

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var (
	ErrUnknownDataset  = errors.New("unknown dataset")
	ErrTooFewLabels    = errors.New("not enough labels to fill a board")
	ErrFreebieInLabels = errors.New("freebie repeated in labels")
)

// Dataset is a named list of tile labels. Freebie, when set, is always shown
// on the free center cell and must not also appear in Labels.
type Dataset struct {
	Name        string   `mapstructure:"name"`
	Description string   `mapstructure:"description"`
	Labels      []string `mapstructure:"labels"`
	Freebie     string   `mapstructure:"freebie"`
}

// MinLabels returns the number of labels needed to fill a board.
func (d Dataset) MinLabels() int {
	if d.Freebie != "" {
		return TileCount
	}

	return TileCount + 1
}

func (d Dataset) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("dataset has no name")
	}
	if len(d.Labels) < d.MinLabels() {
		return fmt.Errorf("%w: %q has %d, needs %d", ErrTooFewLabels, d.Name, len(d.Labels), d.MinLabels())
	}
	if d.Freebie != "" && slices.Contains(d.Labels, d.Freebie) {
		return fmt.Errorf("%w: %q in %q", ErrFreebieInLabels, d.Freebie, d.Name)
	}

	return nil
}

// Entry pairs a dataset with its ID.
type Entry struct {
	ID int
	Dataset
}

// Catalog is an immutable set of validated datasets keyed by ID.
type Catalog struct {
	datasets map[int]Dataset
	ids      []int
}

// NewCatalog validates every dataset and returns a catalog holding copies of
// them. IDs must fit in a token.
func NewCatalog(datasets map[int]Dataset) (*Catalog, error) {
	c := &Catalog{
		datasets: make(map[int]Dataset, len(datasets)),
		ids:      make([]int, 0, len(datasets)),
	}

	for id, d := range datasets {
		if id < 0 || id > MaxDatasetID {
			return nil, fmt.Errorf("%w: %d", ErrInvalidDataset, id)
		}
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("dataset %d: %w", id, err)
		}

		d.Labels = append([]string(nil), d.Labels...)
		c.datasets[id] = d
		c.ids = append(c.ids, id)
	}

	sort.Ints(c.ids)

	return c, nil
}

// Get returns the dataset with the given ID.
func (c *Catalog) Get(id int) (Dataset, error) {
	d, ok := c.datasets[id]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %d", ErrUnknownDataset, id)
	}

	d.Labels = append([]string(nil), d.Labels...)

	return d, nil
}

// Has reports whether id names a dataset.
func (c *Catalog) Has(id int) bool {
	_, ok := c.datasets[id]

	return ok
}

// Entries returns every dataset in ID order.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.ids))
	for _, id := range c.ids {
		d, _ := c.Get(id)
		entries = append(entries, Entry{ID: id, Dataset: d})
	}

	return entries
}

// Len returns the number of datasets.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Builtin returns the datasets shipped with the game.
func Builtin() map[int]Dataset {
	numbers := make([]string, 50)
	for i := range numbers {
		numbers[i] = strconv.Itoa(i + 1)
	}

	return map[int]Dataset{
		0: {
			Name:        "Bingo",
			Description: "Standard Bingo numbers",
			Labels:      numbers,
		},
		1: {
			Name:        "US States",
			Description: "US States dataset",
			Freebie:     "California",
			Labels: []string{
				"Alabama", "Alaska", "Arizona", "Arkansas", "Colorado",
				"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii",
				"Idaho", "Illinois", "Indiana", "Iowa", "Kansas",
				"Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts",
				"Michigan", "Minnesota", "Mississippi", "Missouri", "Montana",
				"Nebraska", "Nevada", "New Hampshire", "New Jersey", "New Mexico",
				"New York", "North Carolina", "North Dakota", "Ohio", "Oklahoma",
				"Oregon", "Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
				"Tennessee", "Texas", "Utah", "Vermont", "Virginia",
				"Washington", "West Virginia", "Wisconsin", "Wyoming",
			},
		},
	}
}

type datasetFile struct {
	Datasets []struct {
		ID      int `mapstructure:"id"`
		Dataset `mapstructure:",squash"`
	} `mapstructure:"datasets"`
}

// LoadDatasets reads extra datasets from a YAML, JSON or TOML file with a
// top-level "datasets" list. Each entry needs an id, a name and labels.
func LoadDatasets(path string) (map[int]Dataset, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading datasets: %w", err)
	}

	var f datasetFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("parsing datasets: %w", err)
	}

	datasets := make(map[int]Dataset, len(f.Datasets))
	for _, d := range f.Datasets {
		if _, ok := datasets[d.ID]; ok {
			return nil, fmt.Errorf("dataset %d defined twice", d.ID)
		}
		datasets[d.ID] = d.Dataset
	}

	return datasets, nil
}

// Merge returns base with every dataset in extra added. Datasets in extra
// replace those in base with the same ID.
func Merge(base, extra map[int]Dataset) map[int]Dataset {
	merged := make(map[int]Dataset, len(base)+len(extra))
	for id, d := range base {
		merged[id] = d
	}
	for id, d := range extra {
		merged[id] = d
	}

	return merged
}
