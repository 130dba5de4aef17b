// Package source loads photos from local directories and remote URLs.
//
// A [Source] resolves one photo reference into a decoded image. The
// [Resolver] dispatches each reference to the right source by scheme
// (http/https versus filesystem path) and loads batches concurrently
// while preserving input order, which downstream consumers rely on for
// slot assignment.
package source

import (
	"context"
	"image"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/collagely/collagely/pkg/xerrors"
)

// DefaultConcurrency bounds parallel photo loads in a [Resolver].
const DefaultConcurrency = 8

// Source loads a single photo reference.
type Source interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// Resolver dispatches photo references to a local or remote source by
// scheme and resolves batches concurrently.
type Resolver struct {
	Local       Source
	Remote      Source
	Concurrency int
}

// NewResolver returns a resolver with the default sources: files
// resolved against the current directory and remote fetches through a
// shared HTTP client.
func NewResolver() *Resolver {
	return &Resolver{
		Local:       Files{},
		Remote:      NewHTTP(nil),
		Concurrency: DefaultConcurrency,
	}
}

// Resolve loads all references and returns the images in input order.
// The first failure cancels the remaining loads.
func (r *Resolver) Resolve(ctx context.Context, refs []string) ([]image.Image, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	images := make([]image.Image, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Concurrency, 1))

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			img, err := r.sourceFor(ref).Load(ctx, ref)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *Resolver) sourceFor(ref string) Source {
	if IsRemote(ref) {
		return r.Remote
	}
	return r.Local
}

// IsRemote reports whether ref is an http or https URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func decodeError(ref string, err error) error {
	return xerrors.Wrap(err, xerrors.ErrCodeUnsupported, "decoding %s", ref)
}
