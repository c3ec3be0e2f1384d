package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseConfig points at a Supabase project's Storage API.
type SupabaseConfig struct {
	URL          string
	Key          string
	Bucket       string
	CacheControl string
}

// Supabase uploads objects through the Storage API client.
type Supabase struct {
	cfg    SupabaseConfig
	client *storage_go.Client
	// The client keeps upload options in headers shared by every request.
	mu sync.Mutex
}

func NewSupabase(cfg SupabaseConfig) *Supabase {
	if cfg.CacheControl == "" {
		cfg.CacheControl = "3600"
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Supabase{
		cfg:    cfg,
		client: storage_go.NewClient(cfg.URL+"/storage/v1", cfg.Key, map[string]string{"apikey": cfg.Key}),
	}
}

// Put uploads without upsert, so an existing name is an error rather than an overwrite.
func (s *Supabase) Put(ctx context.Context, object Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	contentType := object.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := false
	opts := storage_go.FileOptions{
		CacheControl: &s.cfg.CacheControl,
		ContentType:  &contentType,
		Upsert:       &upsert,
	}

	s.mu.Lock()
	_, err := s.client.UploadFile(s.cfg.Bucket, object.Name, object.Body, opts)
	s.mu.Unlock()
	if err != nil {
		var storageErr *storage_go.StorageError
		if errors.As(err, &storageErr) {
			return "", fmt.Errorf("storage rejected upload: %w", err)
		}
		return "", fmt.Errorf("upload request failed: %w", err)
	}

	return s.PublicURL(object.Name), nil
}

// PublicURL is the anonymous download URL of an object in the bucket.
func (s *Supabase) PublicURL(name string) string {
	return s.client.GetPublicUrl(s.cfg.Bucket, name).SignedURL
}
