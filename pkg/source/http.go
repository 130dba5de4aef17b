package source

import (
	"bytes"
	"context"
	"image"
	"net/http"

	"github.com/disintegration/imaging"

	"github.com/collagely/collagely/pkg/httputil"
)

// HTTP loads photos from http and https URLs with retrying fetches.
type HTTP struct {
	client *http.Client
}

// NewHTTP returns an HTTP source. A nil client uses the package default.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = httputil.NewClient()
	}
	return &HTTP{client: client}
}

func (h *HTTP) Load(ctx context.Context, ref string) (image.Image, error) {
	body, err := httputil.Fetch(ctx, h.client, ref)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, decodeError(ref, err)
	}
	return img, nil
}
