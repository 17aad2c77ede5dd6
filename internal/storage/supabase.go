package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	supabaseListPageSize = 1000
	supabaseHTTPTimeout  = 60 * time.Second
)

// SupabaseStore 通过 Supabase Storage REST 接口读写存储桶
type SupabaseStore struct {
	baseURL    string
	serviceKey string
	bucket     string
	client     *http.Client
}

// NewSupabaseStore baseURL 形如 https://xyz.supabase.co；client 为 nil 时使用默认客户端
func NewSupabaseStore(baseURL, serviceKey, bucket string, client *http.Client) (*SupabaseStore, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" || serviceKey == "" {
		return nil, fmt.Errorf("supabase storage: url and service key are required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("supabase storage: bucket is required")
	}
	if client == nil {
		client = &http.Client{Timeout: supabaseHTTPTimeout}
	}
	return &SupabaseStore{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		bucket:     bucket,
		client:     client,
	}, nil
}

// supabaseError Storage API 的错误响应体
type supabaseError struct {
	StatusCode json.Number `json:"statusCode"`
	Error      string      `json:"error"`
	Message    string      `json:"message"`
}

type supabaseObject struct {
	Name string  `json:"name"`
	ID   *string `json:"id"`
}

func (s *SupabaseStore) Put(ctx context.Context, key string, data []byte, opts PutOptions) error {
	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := s.newRequest(ctx, http.MethodPost, s.objectURL("", key), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", strconv.FormatBool(opts.Overwrite))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("supabase storage: upload %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	apiErr := readSupabaseError(resp)
	if resp.StatusCode == http.StatusConflict || apiErr.StatusCode.String() == "409" || apiErr.Error == "Duplicate" {
		return fmt.Errorf("supabase storage: upload %s: %w", key, ErrObjectExists)
	}
	return fmt.Errorf("supabase storage: upload %s: status %d: %s", key, resp.StatusCode, apiErr.describe())
}

func (s *SupabaseStore) Remove(ctx context.Context, key string) error {
	payload, err := json.Marshal(map[string][]string{"prefixes": {key}})
	if err != nil {
		return err
	}
	req, err := s.newRequest(ctx, http.MethodDelete, s.baseURL+"/storage/v1/object/"+url.PathEscape(s.bucket), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("supabase storage: remove %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	apiErr := readSupabaseError(resp)
	return fmt.Errorf("supabase storage: remove %s: status %d: %s", key, resp.StatusCode, apiErr.describe())
}

func (s *SupabaseStore) Exists(ctx context.Context, key string) (bool, error) {
	req, err := s.newRequest(ctx, http.MethodHead, s.objectURL("authenticated", key), nil)
	if err != nil {
		return false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("supabase storage: head %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		// 旧版本 Storage 对不存在的对象返回 400
		return false, nil
	default:
		return false, fmt.Errorf("supabase storage: head %s: status %d", key, resp.StatusCode)
	}
}

// List 递归列出存储桶；Supabase 对"目录"返回 id 为 null 的条目
func (s *SupabaseStore) List(ctx context.Context) ([]string, error) {
	var keys []string
	prefixes := []string{""}
	for len(prefixes) > 0 {
		prefix := prefixes[0]
		prefixes = prefixes[1:]

		for offset := 0; ; offset += supabaseListPageSize {
			page, err := s.listPage(ctx, prefix, offset)
			if err != nil {
				return nil, err
			}
			for _, obj := range page {
				full := obj.Name
				if prefix != "" {
					full = prefix + "/" + obj.Name
				}
				if obj.ID == nil {
					prefixes = append(prefixes, full)
					continue
				}
				keys = append(keys, full)
			}
			if len(page) < supabaseListPageSize {
				break
			}
		}
	}
	return keys, nil
}

func (s *SupabaseStore) listPage(ctx context.Context, prefix string, offset int) ([]supabaseObject, error) {
	payload, err := json.Marshal(map[string]any{
		"prefix": prefix,
		"limit":  supabaseListPageSize,
		"offset": offset,
		"sortBy": map[string]string{"column": "name", "order": "asc"},
	})
	if err != nil {
		return nil, err
	}
	req, err := s.newRequest(ctx, http.MethodPost, s.baseURL+"/storage/v1/object/list/"+url.PathEscape(s.bucket), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase storage: list %q: %w", prefix, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := readSupabaseError(resp)
		return nil, fmt.Errorf("supabase storage: list %q: status %d: %s", prefix, resp.StatusCode, apiErr.describe())
	}
	var page []supabaseObject
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("supabase storage: decode list %q: %w", prefix, err)
	}
	return page, nil
}

// PublicURL {url}/storage/v1/object/public/{bucket}/{key}
func (s *SupabaseStore) PublicURL(key string) string {
	return s.objectURL("public", key)
}

func (s *SupabaseStore) objectURL(scope, key string) string {
	var b strings.Builder
	b.WriteString(s.baseURL)
	b.WriteString("/storage/v1/object/")
	if scope != "" {
		b.WriteString(scope)
		b.WriteByte('/')
	}
	b.WriteString(url.PathEscape(s.bucket))
	for _, segment := range strings.Split(key, "/") {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(segment))
	}
	return b.String()
}

func (s *SupabaseStore) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("supabase storage: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	return req, nil
}

func readSupabaseError(resp *http.Response) supabaseError {
	var apiErr supabaseError
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err := json.Unmarshal(body, &apiErr); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

func (e supabaseError) describe() string {
	switch {
	case e.Message != "" && e.Error != "":
		return e.Error + ": " + e.Message
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	default:
		return "unknown error"
	}
}
