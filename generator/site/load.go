package site

import (
	"fmt"
	"log/slog"
	"maps"
	"mime"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"znkr.io/doxymd/generator/config"
	"znkr.io/doxymd/generator/doxygen"
	"znkr.io/doxymd/generator/page"
	"znkr.io/doxymd/generator/permalink"
	"znkr.io/doxymd/generator/render"
)

// Load renders all compounds of the Doxygen XML directory cfg.Input.
func Load(cfg *config.Config, log *slog.Logger) (*Site, error) {
	idx, err := permalink.Load(cfg.Input, permalink.Options{BaseURL: cfg.BaseURL, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("loading index: %v", err)
	}
	r, err := render.New(idx, render.Options{
		HeadingOffset: cfg.HeadingOffset,
		ImagesURL:     cfg.Images(),
		NoLineAnchors: !cfg.LineAnchors,
		Logger:        log,
	})
	if err != nil {
		return nil, err
	}
	b := page.NewBuilder(r, idx)

	docs := make(map[string]Doc)
	images := make(map[string]bool)
	for _, c := range idx.Compounds() {
		p, err := build(b, cfg.Input, c.RefID)
		if err != nil {
			if !cfg.KeepGoing {
				return nil, err
			}
			log.Error("skipping compound", "refid", c.RefID, "error", err)
			continue
		}
		docs[p.Permalink] = Doc{
			path: p.Permalink,
			file: p.Path + ".md",
			mime: "text/html;charset=UTF-8",
			page: p,
		}
		for _, name := range p.Images {
			images[name] = true
		}
	}

	prefix := strings.TrimSuffix(cfg.Images(), "/")
	for _, name := range slices.Sorted(maps.Keys(images)) {
		if !filepath.IsLocal(filepath.FromSlash(name)) {
			log.Warn("image outside of input directory", "name", name)
			continue
		}
		src := filepath.Join(cfg.Input, filepath.FromSlash(name))
		if _, err := os.Stat(src); err != nil {
			log.Warn("missing image", "name", name, "error", err)
			continue
		}
		docs[prefix+"/"+name] = Doc{
			path: prefix + "/" + name,
			file: path.Join(cfg.ImagesDir, name),
			mime: mime.TypeByExtension(path.Ext(name)),
			src:  src,
		}
	}

	log.Debug("site loaded", "compounds", len(idx.Compounds()), "docs", len(docs))
	return &Site{docs: docs}, nil
}

func build(b *page.Builder, dir, refid string) (*page.Page, error) {
	def, err := doxygen.CompoundDef(dir, refid)
	if err != nil {
		return nil, fmt.Errorf("loading compound %s: %v", refid, err)
	}
	return b.Build(def)
}
