package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

const DefaultImgurEndpoint = "https://api.imgur.com/3/image"

type Imgur struct {
	ClientID string
	Endpoint string
	HTTP     *http.Client
}

type imgurResp struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		Link  string `json:"link"`
		Error any    `json:"error"`
	} `json:"data"`
}

func (u *Imgur) Upload(ctx context.Context, fh *multipart.FileHeader) (link string, err error) {
	if fh == nil {
		return "", nil
	}
	defer func() { observe("imgur", err) }()

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", fh.Filename)
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(part, src); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err = mw.Close(); err != nil {
		return "", err
	}

	endpoint := u.Endpoint
	if endpoint == "" {
		endpoint = DefaultImgurEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+u.ClientID)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	client := u.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("imgur request: %w", err)
	}
	defer res.Body.Close()

	var out imgurResp
	if err = json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("imgur response (status %d): %w", res.StatusCode, err)
	}
	if res.StatusCode != http.StatusOK || !out.Success || out.Data.Link == "" {
		return "", fmt.Errorf("imgur upload failed: status %d, error %v", res.StatusCode, out.Data.Error)
	}
	return out.Data.Link, nil
}
