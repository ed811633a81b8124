package images

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const uploadsDirectory = "uploads"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Manager saves and deletes uploaded images under a root directory
// using deterministic names derived from the owning content ids, so an
// entity's image can always be replaced or removed without tracking
// filenames.
type Manager struct {
	root string
	log  *logrus.Entry
}

// NewManager roots the manager at dir (the web root); files land in
// dir/uploads/{trads,users}.
func NewManager(dir string) *Manager {
	return &Manager{root: dir, log: logrus.WithField("component", "images")}
}

func (m *Manager) SaveTradImage(file *multipart.FileHeader, tradID int) (string, error) {
	return m.save(file, "trads", fmt.Sprintf("trad-%d", tradID))
}

func (m *Manager) SavePostImage(file *multipart.FileHeader, tradID, postID int) (string, error) {
	return m.save(file, "trads", fmt.Sprintf("trad-%d-post-%d", tradID, postID))
}

func (m *Manager) SaveCommentImage(file *multipart.FileHeader, tradID, postID, commentID int) (string, error) {
	return m.save(file, "trads", fmt.Sprintf("trad-%d-post-%d-com-%d", tradID, postID, commentID))
}

func (m *Manager) SaveUserImage(file *multipart.FileHeader, username string) (string, error) {
	return m.save(file, "users", username)
}

func (m *Manager) DeleteTradImage(tradID int) bool {
	return m.deleteByPrefix("trads", fmt.Sprintf("trad-%d", tradID))
}

func (m *Manager) DeletePostImage(tradID, postID int) bool {
	return m.deleteByPrefix("trads", fmt.Sprintf("trad-%d-post-%d", tradID, postID))
}

func (m *Manager) DeleteCommentImage(tradID, postID, commentID int) bool {
	return m.deleteByPrefix("trads", fmt.Sprintf("trad-%d-post-%d-com-%d", tradID, postID, commentID))
}

// save writes the upload as {prefix}{ext} under uploads/{subfolder},
// replacing any previous image with the same prefix, and returns the
// relative path to store on the entity. A nil file is not an error;
// images are optional.
func (m *Manager) save(file *multipart.FileHeader, subfolder, prefix string) (string, error) {
	if file == nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image format %q", ext)
	}

	folder := filepath.Join(m.root, uploadsDirectory, subfolder)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", err
	}

	// Replace whatever was there before, extension changes included.
	m.deleteByPrefix(subfolder, prefix)

	name := prefix + ext
	dst := filepath.Join(folder, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}

	relative := fmt.Sprintf("%s/%s/%s", uploadsDirectory, subfolder, name)
	m.log.WithField("path", relative).Info("image saved")
	return relative, nil
}

// deleteByPrefix removes files named {prefix}.* in uploads/{subfolder}.
// The prefix match is exact up to the extension, so trad-1 does not
// shadow trad-10.
func (m *Manager) deleteByPrefix(subfolder, prefix string) bool {
	pattern := filepath.Join(m.root, uploadsDirectory, subfolder, prefix+".*")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return false
	}

	deleted := false
	for _, match := range matches {
		if err := os.Remove(match); err == nil {
			deleted = true
		}
	}
	if deleted {
		m.log.WithField("prefix", prefix).Info("image removed")
	}
	return deleted
}
