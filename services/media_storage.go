package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MediaStorage persists uploaded image bytes and returns the public path.
type MediaStorage interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, filePath string) error
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safeFilename(name string) string {
	name = unsafeFileChars.ReplaceAllString(filepath.Base(name), "_")
	if name == "" || name == "." || name == "_" {
		name = "image"
	}
	return name
}

// LocalStorage writes files under Dir/<folder>/ and serves them from URLPrefix.
type LocalStorage struct {
	Dir       string
	URLPrefix string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{Dir: dir, URLPrefix: "/uploads"}
}

func (s *LocalStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), safeFilename(filename))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join(s.URLPrefix, folder, name), nil
}

func (s *LocalStorage) Remove(ctx context.Context, filePath string) error {
	rel := strings.TrimPrefix(filePath, s.URLPrefix+"/")
	if rel == filePath || strings.Contains(rel, "..") {
		return fmt.Errorf("path %q is not managed by local storage", filePath)
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// CloudinaryStorage uploads to one cloudinary folder per entity type.
type CloudinaryStorage struct {
	cld  *cloudinary.Cloudinary
	root string
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary, root string) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, root: root}
}

func (s *CloudinaryStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   path.Join(s.root, folder),
		PublicID: fmt.Sprintf("%d-%s", time.Now().UnixNano(), strings.TrimSuffix(safeFilename(filename), filepath.Ext(filename))),
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStorage) Remove(ctx context.Context, filePath string) error {
	publicID := cloudinaryPublicID(filePath)
	if publicID == "" {
		return fmt.Errorf("cannot derive public id from %q", filePath)
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return nil
}

var cloudinaryVersion = regexp.MustCompile(`^v\d+/`)

// cloudinaryPublicID extracts "folder/name" from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/travelcms/hotel/name.jpg.
func cloudinaryPublicID(url string) string {
	i := strings.Index(url, "/upload/")
	if i < 0 {
		return ""
	}
	id := cloudinaryVersion.ReplaceAllString(url[i+len("/upload/"):], "")
	return strings.TrimSuffix(id, path.Ext(id))
}
