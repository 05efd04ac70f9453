package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justsurfingit/jobhunt/internal/models"
)

// TemplateStore resolves the cover letter template for a job type.
type TemplateStore struct {
	Dir       string
	Overrides map[models.JobType]string
}

// NewTemplateStore builds a store rooted at dir. Override keys are parsed with
// models.ParseJobType; unknown keys are ignored.
func NewTemplateStore(dir string, overrides map[string]string) *TemplateStore {
	store := &TemplateStore{Dir: dir, Overrides: map[models.JobType]string{}}
	for k, path := range overrides {
		if jt := models.ParseJobType(k); jt != models.JobTypeUnknown {
			store.Overrides[jt] = path
		}
	}
	return store
}

// Path returns the template file for jt, or "" when the type is unknown.
func (s *TemplateStore) Path(jt models.JobType) string {
	if jt == models.JobTypeUnknown {
		return ""
	}
	if p, ok := s.Overrides[jt]; ok {
		return p
	}
	return filepath.Join(s.Dir, jt.Slug()+"_template.txt")
}

// Load reads the template for jt. A missing template is not an error: it returns "".
func (s *TemplateStore) Load(jt models.JobType) (string, error) {
	path := s.Path(jt)
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", path, err)
	}
	return string(b), nil
}
