package source

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/collagely/collagely/pkg/xerrors"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff"}

// Files loads photos from filesystem paths. An empty Root resolves
// references as given; otherwise references are resolved relative to
// Root and may not escape it.
type Files struct {
	Root string
}

func (f Files) Load(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := f.resolve(ref)
	if err != nil {
		return nil, err
	}

	// EXIF orientation is applied on load so portrait shots from phones
	// come out upright.
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xerrors.New(xerrors.ErrCodeImageNotFound, "image not found: %s", ref)
		}
		return nil, decodeError(ref, err)
	}
	return img, nil
}

func (f Files) resolve(ref string) (string, error) {
	if f.Root == "" {
		return ref, nil
	}
	path := filepath.Join(f.Root, ref)
	rel, err := filepath.Rel(f.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", xerrors.New(xerrors.ErrCodeInvalidRequest, "reference %q escapes the photo root", ref)
	}
	return path, nil
}

// ListDir returns the image files directly inside dir, sorted by name.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xerrors.New(xerrors.ErrCodeNotFound, "directory not found: %s", dir)
		}
		return nil, xerrors.Wrap(err, xerrors.ErrCodeInternal, "listing %s", dir)
	}

	var refs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			refs = append(refs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(refs)
	return refs, nil
}
