// Package api talks to the image/description blob storage service. The
// interface is narrow on purpose so tests swap the HTTP implementation for a
// mock.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type BlobApi interface {
	GetImage(ctx context.Context, id string) ([]byte, error)
	UploadImage(ctx context.Context, data []byte) (string, error)
	GetDescr(ctx context.Context, id string) ([]byte, error)
	UploadDescr(ctx context.Context, data []byte) (string, error)
}

type HttpBlobApi struct {
	baseUrl string
	client  *http.Client
}

func NewHttpBlobApi(baseUrl string) *HttpBlobApi {
	return &HttpBlobApi{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		client:  &http.Client{},
	}
}

func (api *HttpBlobApi) GetImage(ctx context.Context, id string) ([]byte, error) {
	return api.get(ctx, "image", id)
}

func (api *HttpBlobApi) UploadImage(ctx context.Context, data []byte) (string, error) {
	return api.upload(ctx, "image", data)
}

func (api *HttpBlobApi) GetDescr(ctx context.Context, id string) ([]byte, error) {
	return api.get(ctx, "descr", id)
}

func (api *HttpBlobApi) UploadDescr(ctx context.Context, data []byte) (string, error) {
	return api.upload(ctx, "descr", data)
}

func (api *HttpBlobApi) get(ctx context.Context, kind, id string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", api.baseUrl, kind, id)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := api.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching %s %q: %w", kind, id, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s %q: unexpected status %v", kind, id, response.Status)
	}
	return io.ReadAll(response.Body)
}

func (api *HttpBlobApi) upload(ctx context.Context, kind string, data []byte) (string, error) {
	url := fmt.Sprintf("%s/%s", api.baseUrl, kind)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/octet-stream")

	response, err := api.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", kind, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("uploading %s: unexpected status %v", kind, response.Status)
	}

	id, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}
	return string(id), nil
}
