package services

import (
	"os"
	"path/filepath"
	"strings"

	"copilot-replica/internal/models"
)

const (
	mediaDir           = "media"
	defaultMediaName   = "unknown"
	defaultUploadName  = "file"
	defaultContentType = "text/plain"
)

// WorkspaceService writes uploaded files under a fixed root directory.
type WorkspaceService struct {
	root string
}

func NewWorkspaceService(root string) *WorkspaceService {
	return &WorkspaceService{root: root}
}

func (s *WorkspaceService) Root() string {
	return s.root
}

// SaveMedia persists a media item attached to a chat message. Image types land
// in the media subdirectory.
func (s *WorkspaceService) SaveMedia(file models.UploadedFile) (string, error) {
	if file.Name == "" {
		file.Name = defaultMediaName
	}
	if file.Type == "" {
		file.Type = defaultContentType
	}
	return s.Save(file)
}

// SaveUpload persists a direct file upload.
func (s *WorkspaceService) SaveUpload(name, content string) (string, error) {
	if name == "" {
		name = defaultUploadName
	}
	return s.Save(models.UploadedFile{Name: name, Content: content})
}

// Save resolves the target path for file, creates missing parent directories
// and writes the content, replacing any existing file.
func (s *WorkspaceService) Save(file models.UploadedFile) (string, error) {
	if err := validateName(file.Name); err != nil {
		return "", err
	}

	path := s.resolve(file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", &PersistError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte(file.Content), 0o644); err != nil {
		return "", &PersistError{Path: path, Err: err}
	}
	return path, nil
}

func (s *WorkspaceService) resolve(file models.UploadedFile) string {
	if strings.HasPrefix(file.Type, "image") {
		return filepath.Join(s.root, mediaDir, file.Name)
	}
	return filepath.Join(s.root, file.Name)
}

// validateName accepts a single plain path element only.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return &InvalidNameError{Name: name}
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return &InvalidNameError{Name: name}
	}
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return &InvalidNameError{Name: name}
	}
	return nil
}
