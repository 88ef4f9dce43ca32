package updater

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Whitelist is the destination for accepted CIDR ranges.
type Whitelist interface {
	Write(ranges []string, now time.Time) error
}

// FileWhitelist writes the postfix cidr table. Before any mutation the
// current file is copied to a timestamped backup; the new content is then
// written to a temp file in the same directory and renamed into place, so
// postfix never observes a torn file. Backups are never cleaned up here;
// retention is the operator's concern.
type FileWhitelist struct {
	Path      string
	SourceURL string
}

func (w FileWhitelist) Write(ranges []string, now time.Time) error {
	if err := w.backup(now); err != nil {
		return err
	}

	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "could not create whitelist directory")
	}

	tmp, err := os.CreateTemp(dir, ".clients-*")
	if err != nil {
		return errors.Wrap(err, "could not create temporary whitelist file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(w.render(ranges, now)); err != nil {
		tmp.Close()
		return errors.Wrap(err, "could not write whitelist file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "could not sync whitelist file")
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrap(err, "could not set whitelist permissions")
	}

	return errors.Wrap(os.Rename(tmp.Name(), w.Path), "could not replace whitelist file")
}

func (w FileWhitelist) backup(now time.Time) error {
	current, err := os.ReadFile(w.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "could not read current whitelist")
	}

	backupPath := fmt.Sprintf("%s.backup.%d", w.Path, now.Unix())
	return errors.Wrap(os.WriteFile(backupPath, current, 0644), "could not write backup")
}

func (w FileWhitelist) render(ranges []string, now time.Time) string {
	lines := []string{
		fmt.Sprintf("# Generated at %s UTC", now.UTC().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("# Source: %s", w.SourceURL),
		fmt.Sprintf("# Total IP ranges: %d", len(ranges)),
		"",
	}
	for _, r := range ranges {
		lines = append(lines, fmt.Sprintf("%s OK", r))
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}
