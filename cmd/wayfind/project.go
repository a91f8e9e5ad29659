package main

import (
	"github.com/callmeskyy111/wayfind/internal/config"
	"github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/pkg/manifest"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

// loadProject loads wayfind.json from the working directory tree. When
// manifestFlag is set, a missing config file is tolerated and defaults
// fill the gap, so the CLI works on a bare manifest outside a project.
func loadProject(manifestFlag string) (*config.Config, error) {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		if manifestFlag != "" {
			return config.New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// manifestPath picks the manifest location: an explicit flag wins over
// the configured path.
func manifestPath(cfg *config.Config, manifestFlag string) (string, error) {
	if manifestFlag != "" {
		return manifestFlag, nil
	}
	if cfg.Manifest == "" {
		return "", errors.New("E121")
	}
	return cfg.ManifestPath(), nil
}

// loadTree loads the manifest and compiles it into a route tree.
func loadTree(manifestFlag string) (*router.RouteNode, *config.Config, string, error) {
	cfg, err := loadProject(manifestFlag)
	if err != nil {
		return nil, nil, "", err
	}

	path, err := manifestPath(cfg, manifestFlag)
	if err != nil {
		return nil, nil, "", err
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, "", err
	}

	root, err := router.BuildTree(m.Decls())
	if err != nil {
		return nil, nil, "", errors.New("E020").Wrap(err).WithDetail(err.Error())
	}

	return root, cfg, path, nil
}
