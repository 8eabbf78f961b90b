package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

var ErrUnsupportedCatalogFormat = errors.New("unsupported catalog file format")

// FileCatalogRepository reads quiz definitions from a JSON or YAML file.
type FileCatalogRepository struct {
	path   string
	logger *zap.Logger
}

// NewFileCatalogRepository creates a repository reading the catalog at path.
// The format is chosen by extension: .json, .yaml or .yml.
func NewFileCatalogRepository(path string, logger *zap.Logger) *FileCatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileCatalogRepository{
		path:   path,
		logger: logger,
	}
}

// LoadAll returns the quiz entries of the file, well-formed or not.
// Entries that cannot be decoded at all are skipped with a warning.
func (r *FileCatalogRepository) LoadAll(_ context.Context) ([]entities.Quiz, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var quizzes []entities.Quiz
	switch ext := strings.ToLower(filepath.Ext(r.path)); ext {
	case ".json":
		quizzes, err = r.decodeJSON(data)
	case ".yaml", ".yml":
		quizzes, err = r.decodeYAML(data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedCatalogFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", r.path, err)
	}

	return quizzes, nil
}

// quizRecord is a catalog file entry.
type quizRecord struct {
	ID         string           `json:"id" yaml:"id"`
	Title      string           `json:"title" yaml:"title"`
	Difficulty string           `json:"difficulty" yaml:"difficulty"`
	Color      string           `json:"color" yaml:"color"`
	Questions  []questionRecord `json:"questions" yaml:"questions"`
}

// questionRecord keeps correctIndex as a pointer so that a missing key is not read as option 0.
type questionRecord struct {
	Text         string   `json:"text" yaml:"text"`
	Image        string   `json:"image" yaml:"image"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex *int     `json:"correctIndex" yaml:"correctIndex"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

func (rec quizRecord) toEntity() entities.Quiz {
	q := entities.Quiz{
		ID:         rec.ID,
		Title:      rec.Title,
		Difficulty: rec.Difficulty,
		Color:      rec.Color,
	}
	if rec.Questions != nil {
		q.Questions = make([]entities.Question, len(rec.Questions))
	}
	for i, qr := range rec.Questions {
		correct := entities.NoCorrectIndex
		if qr.CorrectIndex != nil {
			correct = *qr.CorrectIndex
		}
		q.Questions[i] = entities.Question{
			Text:         qr.Text,
			Image:        qr.Image,
			Options:      qr.Options,
			CorrectIndex: correct,
			Explanation:  qr.Explanation,
		}
	}
	return q
}

func (r *FileCatalogRepository) decodeJSON(data []byte) ([]entities.Quiz, error) {
	var wrapper struct {
		Quizzes []json.RawMessage `json:"quizzes"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}

	quizzes := make([]entities.Quiz, 0, len(wrapper.Quizzes))
	for i, raw := range wrapper.Quizzes {
		var rec quizRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			r.skip(i, err)
			continue
		}
		quizzes = append(quizzes, rec.toEntity())
	}

	return quizzes, nil
}

func (r *FileCatalogRepository) decodeYAML(data []byte) ([]entities.Quiz, error) {
	var wrapper struct {
		Quizzes []yaml.Node `yaml:"quizzes"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}

	quizzes := make([]entities.Quiz, 0, len(wrapper.Quizzes))
	for i := range wrapper.Quizzes {
		var rec quizRecord
		if err := wrapper.Quizzes[i].Decode(&rec); err != nil {
			r.skip(i, err)
			continue
		}
		quizzes = append(quizzes, rec.toEntity())
	}

	return quizzes, nil
}

func (r *FileCatalogRepository) skip(position int, err error) {
	r.logger.Warn("skipping undecodable catalog entry",
		zap.String("path", r.path),
		zap.Int("position", position),
		zap.Error(err),
	)
}
