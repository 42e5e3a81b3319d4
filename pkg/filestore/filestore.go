// Package filestore yüklenen görsel ve ses dosyaları için depolama soyutlaması.
// Çekirdek mantık yalnızca bu arayüzün döndürdüğü yolları kaydeder.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"crypto/rand"
	"encoding/hex"
)

// Storage dosya depolama işbirlikçisi.
type Storage interface {
	// Store içeriği verilen dizin altında saklar ve göreli yolu döndürür.
	Store(dir, originalFilename string, content io.Reader) (string, error)
	// Delete göreli yoldaki dosyayı siler. Dosya yoksa hata dönmez.
	Delete(path string) error
	// URL göreli yol için public adresi döndürür.
	URL(path string) string
}

// LocalStorage dosyaları yerel diskte bir kök dizin altında tutar.
type LocalStorage struct {
	Root    string // örn. ./storage
	BaseURL string // örn. /storage
}

// NewLocalStorage yerel depolamayı hazırlar; kök dizin yoksa oluşturur.
func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if root == "" {
		return nil, errors.New("depolama kök dizini boş olamaz")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("depolama dizini oluşturulamadı: %w", err)
	}
	return &LocalStorage{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) Store(dir, originalFilename string, content io.Reader) (string, error) {
	// Orijinal ada güvenilmez; rastgele ad + orijinal uzantı kullanılır.
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(originalFilename))
	relPath := filepath.Join(dir, hex.EncodeToString(buf)+ext)

	absPath := filepath.Join(s.Root, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		_ = os.Remove(absPath)
		return "", err
	}
	return filepath.ToSlash(relPath), nil
}

func (s *LocalStorage) Delete(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(path)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) URL(path string) string {
	return s.BaseURL + "/" + strings.TrimLeft(filepath.ToSlash(path), "/")
}

var _ Storage = (*LocalStorage)(nil)
