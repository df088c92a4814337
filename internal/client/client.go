// Package client talks to the image chart service over HTTP. It is the
// only implementation of gallery.API outside of tests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"imagechart/internal/entity"
	"imagechart/internal/gallery"
)

const defaultHTTPTimeout = 90 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the common response shape of every JSON endpoint.
type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Error      string             `json:"error"`
	Pagination *entity.Pagination `json:"pagination"`
}

func (c *Client) ListImages(ctx context.Context, q entity.ListQuery) (*entity.ImageList, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	env, err := c.do(ctx, http.MethodGet, "/api/images?"+params.Encode(), "", nil)
	if err != nil {
		return nil, err
	}
	var images []*entity.ImageEntry
	if err := json.Unmarshal(env.Data, &images); err != nil {
		return nil, fmt.Errorf("decode image list: %w", err)
	}
	list := &entity.ImageList{Items: images}
	if env.Pagination != nil {
		list.Pagination = *env.Pagination
	}
	return list, nil
}

// UploadBatch posts the batch as one multipart request. Files and their
// metadata are sent as index-aligned parts; progress reports percent of
// the request body written.
func (c *Client) UploadBatch(ctx context.Context, batch gallery.UploadBatch, progress func(percent int)) ([]*entity.ImageEntry, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range batch.Files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, f.Name))
		hdr.Set("Content-Type", f.MimeType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, err
		}
	}
	for _, f := range batch.Files {
		if err := mw.WriteField("descriptions", f.Description); err != nil {
			return nil, err
		}
	}
	for _, f := range batch.Files {
		if err := mw.WriteField("themes", f.Theme); err != nil {
			return nil, err
		}
	}
	for _, f := range batch.Files {
		if err := mw.WriteField("category_ids", f.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	total := int64(body.Len())
	reader := &progressReader{r: &body, total: total, fn: progress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", reader)
	if err != nil {
		return nil, err
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	var created []*entity.ImageEntry
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return created, nil
}

func (c *Client) UpdateImage(ctx context.Context, id string, upd entity.ImageUpdate) error {
	_, err := c.do(ctx, http.MethodPut, "/api/images/"+id, "application/json", jsonBody(upd))
	return err
}

func (c *Client) DeleteImage(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/images/"+id, "", nil)
	return err
}

// FetchImage retrieves the raw bytes of one image together with its
// MIME type and download filename.
func (c *Client) FetchImage(ctx context.Context, id string) (*entity.ImageFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/images/"+id+"/download", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env, envErr := decodeEnvelope(resp)
		if envErr != nil {
			return nil, envErr
		}
		return nil, &entity.APIError{Status: resp.StatusCode, Message: env.Error}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	file := &entity.ImageFile{
		ID:   id,
		Type: resp.Header.Get("Content-Type"),
		Data: data,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		file.Name = params["filename"]
	}
	return file, nil
}

func (c *Client) BulkFetchImages(ctx context.Context, ids []string) ([]entity.ImageFile, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/images/bulk-fetch", "application/json",
		jsonBody(entity.BulkFetchRequest{IDs: ids}))
	if err != nil {
		return nil, err
	}
	var files []entity.ImageFile
	if err := json.Unmarshal(env.Data, &files); err != nil {
		return nil, fmt.Errorf("decode bulk fetch response: %w", err)
	}
	return files, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/categories", "", nil)
	if err != nil {
		return nil, err
	}
	var categories []*entity.Category
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		return nil, fmt.Errorf("decode category list: %w", err)
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, input entity.CategoryInput) (*entity.Category, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/categories", "application/json", jsonBody(input))
	if err != nil {
		return nil, err
	}
	return decodeCategory(env)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, upd entity.CategoryUpdate) (*entity.Category, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/categories/"+id, "application/json", jsonBody(upd))
	if err != nil {
		return nil, err
	}
	return decodeCategory(env)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/categories/"+id, "", nil)
	return err
}

func decodeCategory(env *envelope) (*entity.Category, error) {
	var cat entity.Category
	if err := json.Unmarshal(env.Data, &cat); err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	return &cat, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeEnvelope(resp)
}

// decodeEnvelope turns any non-success response into *entity.APIError
// so callers can classify it apart from transport failures.
func decodeEnvelope(resp *http.Response) (*envelope, error) {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &entity.APIError{Status: resp.StatusCode, Message: resp.Status}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success || resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, &entity.APIError{Status: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

func jsonBody(v interface{}) io.Reader {
	data, _ := json.Marshal(v)
	return bytes.NewReader(data)
}

// progressReader reports cumulative percent of a known-length body as
// the transport consumes it.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	fn    func(percent int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.fn != nil && p.total > 0 {
		p.read += int64(n)
		p.fn(int(p.read * 100 / p.total))
	}
	return n, err
}
