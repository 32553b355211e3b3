package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/kconfig"
	"github.com/crillab/varsat/model"
)

// loadModel reads a Kconfig-dump fact file (§4.5/§6) and wraps it in a
// model.Model. An empty path is valid: some subcommands (a bare
// precondition query) run without a model at all.
func loadModel(path string) (*model.Model, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening model file %q", path)
	}
	defer f.Close()

	dict, err := kconfig.Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading model file %q", path)
	}
	m, err := model.New(dict)
	if err != nil {
		return nil, errors.Wrapf(err, "building model from %q", path)
	}
	return m, nil
}

// loadTree resolves a block-fixture argument: either the name of one of
// this binary's own embedded acceptance-vector fixtures (§8), or a path
// to a JSON-encoded block.StaticTree (§5.1) on disk.
func loadTree(path string) (block.Tree, error) {
	if fixture, ok := namedFixtures[path]; ok {
		return fixture(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening block fixture %q", path)
	}
	defer f.Close()

	tree, err := block.LoadJSON(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading block fixture %q", path)
	}
	return tree, nil
}
