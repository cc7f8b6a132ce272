package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCS stores objects in a Google Cloud Storage bucket. The client is
// created on first use so the server can boot without credentials.
type GCS struct {
	bucket          string
	credentialsFile string
	projectID       string
	publicBase      string

	once    sync.Once
	client  *storage.Client
	initErr error
}

func NewGCS(bucket, credentialsFile, projectID, publicBase string) *GCS {
	if publicBase == "" && bucket != "" {
		publicBase = "https://storage.googleapis.com/" + bucket
	}
	return &GCS{bucket: bucket, credentialsFile: credentialsFile, projectID: projectID, publicBase: publicBase}
}

// Check reports credential problems without touching the network.
func (g *GCS) Check() error {
	switch {
	case g.bucket == "" && g.credentialsFile == "":
		return ErrNoCredentials
	case g.bucket == "":
		return fmt.Errorf("%w: bucket is not set", ErrPartialCredentials)
	case g.credentialsFile != "":
		if _, err := os.Stat(g.credentialsFile); err != nil {
			return fmt.Errorf("%w: %s", ErrNoCredentials, g.credentialsFile)
		}
	}
	return nil
}

func (g *GCS) bucketHandle(ctx context.Context) (*storage.BucketHandle, error) {
	if err := g.Check(); err != nil {
		return nil, err
	}
	g.once.Do(func() {
		var opts []option.ClientOption
		if g.credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(g.credentialsFile))
		}
		if g.projectID != "" {
			opts = append(opts, option.WithQuotaProject(g.projectID))
		}
		// falls back to application default credentials
		g.client, g.initErr = storage.NewClient(context.WithoutCancel(ctx), opts...)
	})
	if g.initErr != nil {
		return nil, classify(g.initErr)
	}
	return g.client.Bucket(g.bucket), nil
}

func (g *GCS) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	b, err := g.bucketHandle(ctx)
	if err != nil {
		return "", err
	}
	w := b.Object(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", classify(err)
	}
	if err := w.Close(); err != nil {
		return "", classify(err)
	}
	return joinURL(g.publicBase, key), nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	b, err := g.bucketHandle(ctx)
	if err != nil {
		return err
	}
	if err := b.Object(key).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return classify(err)
	}
	return nil
}

func (g *GCS) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// classify maps auth failures onto the credential sentinels.
func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusPreconditionFailed:
			return fmt.Errorf("%w: %v", ErrObjectExists, err)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrNoCredentials, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrPartialCredentials, err)
		}
	}
	if strings.Contains(err.Error(), "could not find default credentials") {
		return fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	return fmt.Errorf("object store: %w", err)
}
