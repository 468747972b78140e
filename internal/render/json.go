package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"rrt-planner/internal/rrt"
)

// SaveJSON serializes and saves the result to a JSON file
func SaveJSON(path string, res *rrt.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return errors.Wrap(err, "render: marshal result")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "render: write %s", path)
	}
	return nil
}

// SaveGeoJSON writes the GeoJSON form of res to path.
func SaveGeoJSON(path string, res *rrt.Result) error {
	data, err := GeoJSON(res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "render: write %s", path)
	}
	return nil
}

// SaveAll writes env-<n>.png, env-<n>.geojson and env-<n>.json into dir and
// returns the written paths.
func SaveAll(dir string, env int, res *rrt.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "render: create %s", dir)
	}
	base := filepath.Join(dir, "env-"+strconv.Itoa(env))
	paths := []string{base + ".png", base + ".geojson", base + ".json"}

	if err := SavePNG(paths[0], res); err != nil {
		return nil, err
	}
	if err := SaveGeoJSON(paths[1], res); err != nil {
		return nil, err
	}
	if err := SaveJSON(paths[2], res); err != nil {
		return nil, err
	}
	return paths, nil
}
