// Package upload 把后台表单里的图片转存到图床或本地目录，返回可公开访问的地址。
package upload

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Uploader 没有文件时返回 ("", nil)
type Uploader interface {
	Upload(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

var ErrUnknownProvider = errors.New("upload: unknown provider")

var uploadsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "image_uploads_total", Help: "Count of image uploads by provider and result"},
	[]string{"provider", "result"},
)

func init() { prometheus.MustRegister(uploadsTotal) }

func observe(provider string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	uploadsTotal.WithLabelValues(provider, result).Inc()
}

type Options struct {
	Provider      string // imgur | local
	ImgurClientID string
	ImgurEndpoint string
	LocalDir      string
	PublicPrefix  string
	Timeout       time.Duration
}

func New(o Options) (Uploader, error) {
	switch o.Provider {
	case "imgur":
		if o.ImgurClientID == "" {
			return nil, errors.New("upload: imgur client id is empty")
		}
		return &Imgur{
			ClientID: o.ImgurClientID,
			Endpoint: o.ImgurEndpoint,
			HTTP:     &http.Client{Timeout: o.Timeout},
		}, nil
	case "local", "":
		return &Local{Dir: o.LocalDir, Prefix: o.PublicPrefix}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, o.Provider)
	}
}
