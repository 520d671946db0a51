package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps documents on the local filesystem, one file per object
// plus a small sidecar with the original name and content type. Intended
// for development and single node deployments.
type LocalStore struct {
	rootDir string
}

type localMeta struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

func NewLocalStore(rootDir string) (*LocalStore, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare file store directory: %w", err)
	}
	return &LocalStore{rootDir: rootDir}, nil
}

func (s *LocalStore) objectPath(objectID string) string {
	return filepath.Join(s.rootDir, filepath.Base(objectID))
}

func (s *LocalStore) metaPath(objectID string) string {
	return s.objectPath(objectID) + ".meta.json"
}

func (s *LocalStore) Upload(ctx context.Context, objectID string, name string, contentType string, content io.Reader) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	f, err := os.Create(s.objectPath(objectID))
	if err != nil {
		return ObjectInfo{}, err
	}
	size, err := io.Copy(f, content)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		_ = os.Remove(s.objectPath(objectID))
		return ObjectInfo{}, err
	}

	meta, err := json.Marshal(localMeta{Name: name, ContentType: contentType})
	if err == nil {
		err = os.WriteFile(s.metaPath(objectID), meta, 0o644)
	}
	if err != nil {
		_ = os.Remove(s.objectPath(objectID))
		return ObjectInfo{}, err
	}

	return ObjectInfo{
		ObjectID:    objectID,
		Name:        name,
		ContentType: contentType,
		Size:        size,
	}, nil
}

func (s *LocalStore) Download(ctx context.Context, objectID string) (io.ReadCloser, ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}

	f, err := os.Open(s.objectPath(objectID))
	if err != nil {
		return nil, ObjectInfo{}, err
	}

	info := ObjectInfo{ObjectID: objectID}
	if stat, err := f.Stat(); err == nil {
		info.Size = stat.Size()
	}

	metaRaw, err := os.ReadFile(s.metaPath(objectID))
	if err == nil {
		var meta localMeta
		if err := json.Unmarshal(metaRaw, &meta); err == nil {
			info.Name = meta.Name
			info.ContentType = meta.ContentType
		}
	}

	return f, info, nil
}

func (s *LocalStore) Delete(ctx context.Context, objectID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(s.objectPath(objectID))
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	if err != nil {
		return err
	}
	if rErr := os.Remove(s.metaPath(objectID)); rErr != nil && !errors.Is(rErr, fs.ErrNotExist) {
		return rErr
	}
	return nil
}
