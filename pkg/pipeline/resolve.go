package pipeline

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"github.com/collagely/collagely/pkg/cache"
	"github.com/collagely/collagely/pkg/httputil"
	"github.com/collagely/collagely/pkg/observability"
	"github.com/collagely/collagely/pkg/source"
	"github.com/collagely/collagely/pkg/xerrors"
)

// orderedRefs returns the photo references with the main photo moved to
// the front, which is the order layout slots are consumed in.
func orderedRefs(opts Options) []string {
	refs := make([]string, 0, len(opts.Photos))
	refs = append(refs, opts.Photos[opts.MainIndex])
	for i, ref := range opts.Photos {
		if i != opts.MainIndex {
			refs = append(refs, ref)
		}
	}
	return refs
}

// cachedRemote wraps remote photo loading with byte-level caching, so a
// repeated URL skips the network entirely.
type cachedRemote struct {
	cache   cache.Cache
	keyer   cache.Keyer
	client  *http.Client
	refresh bool
	hits    atomic.Int64
}

func (s *cachedRemote) Load(ctx context.Context, ref string) (image.Image, error) {
	key := s.keyer.ImageKey(ref)

	if !s.refresh {
		if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
			if img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true)); err == nil {
				s.hits.Add(1)
				observability.Cache().OnCacheHit(ctx, "image")
				return img, nil
			}
		} else {
			observability.Cache().OnCacheMiss(ctx, "image")
		}
	}

	body, err := httputil.Fetch(ctx, s.client, ref)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, xerrors.Wrap(err, xerrors.ErrCodeUnsupported, "decoding %s", ref)
	}

	_ = s.cache.Set(ctx, key, body, cache.DefaultImageTTL)
	observability.Cache().OnCacheSet(ctx, "image", len(body))
	return img, nil
}

// newResolver builds a photo resolver whose remote side caches bytes.
func (r *Runner) newResolver(opts Options) (*source.Resolver, *cachedRemote) {
	remote := &cachedRemote{
		cache:   r.Cache,
		keyer:   r.Keyer,
		client:  httputil.NewClient(),
		refresh: opts.Refresh,
	}
	return &source.Resolver{
		Local:       source.Files{Root: opts.PhotoRoot},
		Remote:      remote,
		Concurrency: source.DefaultConcurrency,
	}, remote
}
