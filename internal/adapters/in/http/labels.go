package http

import (
	"os"

	"parceltrack/internal/core/domain/model/delivery"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadLabels returns the default status label catalog with the overrides from
// a YAML file applied. The file maps audience to status code to label:
//
//	admin:
//	  awaiting_buyer_confirmation: Waiting for buyer
//
// An empty path yields the defaults.
func LoadLabels(path string) (delivery.LabelCatalog, error) {
	catalog := delivery.DefaultLabelCatalog()
	if path == "" {
		return catalog, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return delivery.LabelCatalog{}, errors.Wrap(err, "read labels file")
	}

	var overrides map[string]map[string]string
	if err = yaml.Unmarshal(raw, &overrides); err != nil {
		return delivery.LabelCatalog{}, errors.Wrapf(err, "parse labels file %s", path)
	}

	return catalog.WithOverrides(overrides)
}
