package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/pkg/logger"
)

const (
	minMaxWords = 50
	maxMaxWords = 300
)

// Service reads and writes the settings record. Read-modify-write
// operations are serialized within the process; across processes the last
// write wins.
type Service struct {
	store   Store
	archive Archiver
	mu      sync.Mutex
	now     func() time.Time
	newID   func() string
}

// NewService creates a settings service. archive may be nil, in which
// case uploaded files are only kept inline.
func NewService(store Store, archive Archiver) *Service {
	return &Service{
		store:   store,
		archive: archive,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Load returns the stored settings merged over the defaults.
func (s *Service) Load(ctx context.Context) (domain.Settings, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	out := domain.DefaultSettings()
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			logger.Warn("stored settings are unreadable, using defaults", "error", err.Error())
			return domain.DefaultSettings(), nil
		}
	}
	if out.UploadedFiles == nil {
		out.UploadedFiles = []domain.UploadedFile{}
	}
	return out, nil
}

// Save stores in as the whole record and returns what was stored. Numeric
// preferences are clamped to their ranges. A nil file list keeps the stored
// files, and an api key equal to the masked stored key keeps the stored key.
func (s *Service) Save(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if in.UploadedFiles == nil {
		in.UploadedFiles = current.UploadedFiles
	}
	if current.APIKey != "" && in.APIKey == MaskAPIKey(current.APIKey) {
		in.APIKey = current.APIKey
	}
	in.ShopifyStore = strings.TrimSpace(in.ShopifyStore)
	in.MaxWords = clamp(in.MaxWords, minMaxWords, maxMaxWords)
	in.BrandVoiceStrength = clamp(in.BrandVoiceStrength, 0, 100)
	in.DefaultTone = domain.ToneOr(in.DefaultTone, domain.ToneProfessional)
	if in.AIModel == "" {
		in.AIModel = domain.DefaultSettings().AIModel
	}

	if err := s.write(ctx, in); err != nil {
		return domain.Settings{}, err
	}
	logger.Info("settings saved", "shopify_store", in.ShopifyStore, "api_key", MaskAPIKey(in.APIKey))
	return in, nil
}

// AddFile attaches a brand file. Only the first domain.MaxUploadedContent
// characters are kept inline; with an archiver the full body is stored
// under brand-files/<id>/<name>.
func (s *Service) AddFile(ctx context.Context, name string, body []byte) (domain.UploadedFile, error) {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "" || name == "." || name == "/" {
		return domain.UploadedFile{}, fmt.Errorf("%w: file name is required", ErrValidation)
	}
	if !utf8.Valid(body) {
		return domain.UploadedFile{}, fmt.Errorf("%w: %s is not a text file", ErrValidation, name)
	}

	f := domain.UploadedFile{
		ID:         s.newID(),
		Name:       name,
		Size:       int64(len(body)),
		Content:    truncateRunes(string(body), domain.MaxUploadedContent),
		UploadDate: s.now().UTC(),
	}
	if s.archive != nil {
		key := "brand-files/" + f.ID + "/" + name
		if err := s.archive.Archive(ctx, key, body, http.DetectContentType(body)); err != nil {
			return domain.UploadedFile{}, fmt.Errorf("archive %s: %w", name, err)
		}
		f.ObjectKey = key
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.Load(ctx)
	if err != nil {
		return domain.UploadedFile{}, err
	}
	current.UploadedFiles = append(current.UploadedFiles, f)
	if err := s.write(ctx, current); err != nil {
		return domain.UploadedFile{}, err
	}
	logger.Info("brand file uploaded", "name", name, "size", f.Size, "archived", f.ObjectKey != "")
	return f, nil
}

// RemoveFile detaches a brand file. Archived copies are left in place.
func (s *Service) RemoveFile(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.Load(ctx)
	if err != nil {
		return err
	}
	kept := current.UploadedFiles[:0]
	for _, f := range current.UploadedFiles {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(current.UploadedFiles) {
		return ErrNotFound
	}
	current.UploadedFiles = kept
	return s.write(ctx, current)
}

// TestConnection reports "connected" when both Shopify credentials are set.
func (s *Service) TestConnection(ctx context.Context) (string, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	if !current.Connected() {
		return "", ErrNotConnected
	}
	return "connected", nil
}

func (s *Service) write(ctx context.Context, v domain.Settings) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Masked returns a copy of v safe to send to clients.
func Masked(v domain.Settings) domain.Settings {
	v.APIKey = MaskAPIKey(v.APIKey)
	return v
}

// MaskAPIKey keeps the last four characters of key.
func MaskAPIKey(key string) string {
	return logger.RedactSecret(key)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
