package gallery

import (
	"sync"

	"imagechart/internal/entity"
)

// StagedFile is a selected-but-not-yet-uploaded file together with the
// metadata entered for it. Metadata travels with the file, so removing a
// neighbour never shifts a description onto the wrong image.
type StagedFile struct {
	Name        string
	MimeType    string
	Size        int64
	Data        []byte
	Description string
	Theme       string
	CategoryID  string
}

// StagingArea accumulates files between selection and submission.
// Indices are contiguous at all times.
type StagingArea struct {
	mu    sync.Mutex
	files []*StagedFile
}

func NewStagingArea() *StagingArea {
	return &StagingArea{}
}

// AddFiles filters candidates through IsUploadable and appends the
// survivors to the existing staging set. It returns the number accepted;
// if a non-empty candidate list yields nothing, entity.ErrNoValidFiles
// is returned so the caller can tell the user why nothing appeared.
func (s *StagingArea) AddFiles(candidates ...*StagedFile) (int, error) {
	accepted := make([]*StagedFile, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || !IsUploadable(c.MimeType, c.Size) {
			continue
		}
		accepted = append(accepted, c)
	}
	if len(candidates) > 0 && len(accepted) == 0 {
		return 0, entity.ErrNoValidFiles
	}

	s.mu.Lock()
	s.files = append(s.files, accepted...)
	s.mu.Unlock()
	return len(accepted), nil
}

// RemoveFile drops the file at index and closes the gap. Removing the
// last remaining file leaves the area empty.
func (s *StagingArea) RemoveFile(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.files) {
		return entity.ErrImageNotFound
	}
	s.files = append(s.files[:index], s.files[index+1:]...)
	return nil
}

func (s *StagingArea) Clear() {
	s.mu.Lock()
	s.files = nil
	s.mu.Unlock()
}

// Files returns a snapshot of the staged files in insertion order.
func (s *StagingArea) Files() []*StagedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*StagedFile, len(s.files))
	copy(out, s.files)
	return out
}

func (s *StagingArea) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// SetMetadata updates the description, theme and category of the staged
// file at index.
func (s *StagingArea) SetMetadata(index int, description, theme, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.files) {
		return entity.ErrImageNotFound
	}
	f := s.files[index]
	f.Description = description
	f.Theme = theme
	f.CategoryID = categoryID
	return nil
}
