package main

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/rotisserie/eris"

	"github.com/prooflab/artcheck/internal/store"
)

func initStore() (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	return st, nil
}

// loadImage decodes a PNG or JPEG file. An empty path yields nil, which
// downstream reports as an unavailable barcode scan.
func loadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, eris.Wrapf(err, "decode image %s", path)
	}
	return img, nil
}
