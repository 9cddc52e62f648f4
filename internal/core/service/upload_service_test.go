package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

type stubObjectStore struct {
	keys    []string
	removed []string
	failAt  int // 1-based put that fails, 0 for never
	puts    int
}

func (s *stubObjectStore) Put(_ context.Context, key string, r io.Reader, size int64, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.puts++
	if s.failAt > 0 && s.puts == s.failAt {
		return "", errors.New("bucket unavailable")
	}
	s.keys = append(s.keys, key)
	return "https://cdn.example/" + key, nil
}

func (s *stubObjectStore) Remove(_ context.Context, key string) error {
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	s.removed = append(s.removed, key)
	return nil
}

// pngBytes is a minimal PNG header, enough for content sniffing.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)

func pngInput(name string) ports.UploadInput {
	return ports.UploadInput{
		Filename: name,
		Size:     int64(len(pngBytes)),
		Reader:   bytes.NewReader(pngBytes),
	}
}

func TestUploadService_UploadSingle(t *testing.T) {
	store := &stubObjectStore{}
	svc := NewUploadService(store, zerolog.Nop())

	url, err := svc.UploadSingle(context.Background(), pngInput("photo.png"))
	if err != nil {
		t.Fatalf("UploadSingle returned error: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.example/") {
		t.Fatalf("unexpected url: %q", url)
	}
	if len(store.keys) != 1 || !strings.HasSuffix(store.keys[0], ".png") {
		t.Fatalf("expected key keeping the extension, got %v", store.keys)
	}
}

func TestUploadService_UploadSingle_TooLarge(t *testing.T) {
	svc := NewUploadService(&stubObjectStore{}, zerolog.Nop())

	in := pngInput("big.png")
	in.Size = domain.MaxImageBytes + 1
	if _, err := svc.UploadSingle(context.Background(), in); err != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestUploadService_UploadSingle_NotAnImage(t *testing.T) {
	svc := NewUploadService(&stubObjectStore{}, zerolog.Nop())

	data := []byte("just some text, certainly not pixels")
	in := ports.UploadInput{Filename: "notes.txt", Size: int64(len(data)), Reader: bytes.NewReader(data)}
	if _, err := svc.UploadSingle(context.Background(), in); err != ErrNotAnImage {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}

func TestUploadService_UploadMultiple_CapsCount(t *testing.T) {
	store := &stubObjectStore{}
	svc := NewUploadService(store, zerolog.Nop())

	inputs := make([]ports.UploadInput, domain.MaxJobImages+1)
	for i := range inputs {
		inputs[i] = pngInput("p.png")
	}
	if _, err := svc.UploadMultiple(context.Background(), inputs); err != domain.ErrTooManyImages {
		t.Fatalf("expected ErrTooManyImages, got %v", err)
	}
	if len(store.keys) != 0 {
		t.Fatalf("no file should be stored when the cap is exceeded")
	}

	urls, err := svc.UploadMultiple(context.Background(), inputs[:domain.MaxJobImages])
	if err != nil {
		t.Fatalf("UploadMultiple returned error: %v", err)
	}
	if len(urls) != domain.MaxJobImages {
		t.Fatalf("expected %d urls, got %d", domain.MaxJobImages, len(urls))
	}
}

func TestUploadService_UploadMultiple_ValidatesBeforeStoring(t *testing.T) {
	store := &stubObjectStore{}
	svc := NewUploadService(store, zerolog.Nop())

	text := []byte("just some text, certainly not pixels")
	inputs := []ports.UploadInput{
		pngInput("first.png"),
		{Filename: "notes.txt", Size: int64(len(text)), Reader: bytes.NewReader(text)},
	}
	if _, err := svc.UploadMultiple(context.Background(), inputs); !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
	if store.puts != 0 {
		t.Fatalf("nothing should be stored when a later file is invalid, got %d puts", store.puts)
	}
}

func TestUploadService_UploadMultiple_RemovesStoredOnFailure(t *testing.T) {
	store := &stubObjectStore{failAt: 2}
	svc := NewUploadService(store, zerolog.Nop())

	inputs := []ports.UploadInput{pngInput("one.png"), pngInput("two.png")}
	if _, err := svc.UploadMultiple(context.Background(), inputs); err == nil {
		t.Fatalf("expected store failure to surface")
	}
	if len(store.removed) != 1 {
		t.Fatalf("expected 1 removed object, got %v", store.removed)
	}
	if len(store.keys) != 0 {
		t.Fatalf("expected no objects left behind, got %v", store.keys)
	}
}
