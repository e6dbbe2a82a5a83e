package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const templateFileName = "template.m3u"

// fallbackTemplate is served when no template has ever been published,
// so a subscriber gets a diagnosable playlist instead of an empty body.
const fallbackTemplate = "#EXTM3U\n" +
	"#EXTINF:-1," + "No catalog synced yet\n" +
	"{{DOMAIN}}/{{USERNAME}}/{{PASSWORD}}/0\n"

// TemplateCache holds the published playlist template as an immutable
// in-memory snapshot. Publish and Reload replace the snapshot wholesale;
// Generate only ever reads it, so request handlers never take a lock.
type TemplateCache struct {
	dir      string
	snapshot atomic.Pointer[string]
}

func NewTemplateCache(dir string) *TemplateCache {
	return &TemplateCache{dir: dir}
}

// Path is the durable location of the current template.
func (c *TemplateCache) Path() string {
	return filepath.Join(c.dir, templateFileName)
}

// Publish renders the feed into placeholder form, writes it durably via
// a temp file and rename, and swaps the in-memory snapshot.
func (c *TemplateCache) Publish(content string) (string, error) {
	tpl := Render(content)

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create template dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, templateFileName+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp template: %w", err)
	}

	if _, err = tmp.WriteString(tpl); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write template: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp template: %w", err)
	}

	path := c.Path()
	if err = os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to publish template: %w", err)
	}

	c.snapshot.Store(&tpl)
	zap.L().Info(
		"playlist template published",
		zap.String("path", path),
		zap.Int("bytes", len(tpl)),
	)
	return path, nil
}

// Reload replaces the snapshot from the durable template file.
func (c *TemplateCache) Reload() error {
	bytes, err := os.ReadFile(c.Path())
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	tpl := string(bytes)
	c.snapshot.Store(&tpl)
	return nil
}

// Generate fills the template placeholders for one subscriber. An empty
// cache triggers a single reload attempt before falling back to the
// diagnostic playlist.
func (c *TemplateCache) Generate(domain, username, password string) string {
	start := time.Now()

	tpl := c.snapshot.Load()
	if tpl == nil {
		if err := c.Reload(); err != nil {
			zap.L().Warn("template cache empty and reload failed", zap.Error(err))
		}
		tpl = c.snapshot.Load()
	}

	src := fallbackTemplate
	if tpl != nil {
		src = *tpl
	}

	out := strings.ReplaceAll(src, DomainPlaceholder, domain)
	out = strings.ReplaceAll(out, UsernamePlaceholder, username)
	out = strings.ReplaceAll(out, PasswordPlaceholder, password)

	zap.L().Debug(
		"playlist generated",
		zap.String("username", username),
		zap.Duration("took", time.Since(start)),
	)
	return out
}
