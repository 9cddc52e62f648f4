package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

var ErrFileTooLarge = errors.New("file exceeds the 5MB limit")
var ErrNotAnImage = errors.New("file is not an image")

// UploadService validates and stores user-supplied images.
type UploadService struct {
	store ports.ObjectStorage
	log   zerolog.Logger
}

func NewUploadService(store ports.ObjectStorage, log zerolog.Logger) *UploadService {
	return &UploadService{store: store, log: log}
}

// validatedUpload is a fully read and sniffed file, ready to store.
type validatedUpload struct {
	key         string
	contentType string
	data        []byte
}

// readAndValidate reads the file into memory and checks the declared size,
// the actual bytes and the sniffed content type against the image limits.
func readAndValidate(input ports.UploadInput) (*validatedUpload, error) {
	if input.Size > domain.MaxImageBytes {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(input.Reader, domain.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > domain.MaxImageBytes {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	return &validatedUpload{
		key:         buildObjectKey(input.Filename),
		contentType: contentType,
		data:        data,
	}, nil
}

func (s *UploadService) put(ctx context.Context, v *validatedUpload) (string, error) {
	url, err := s.store.Put(ctx, v.key, bytes.NewReader(v.data), int64(len(v.data)), v.contentType)
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	s.log.Info().Str("key", v.key).Int("bytes", len(v.data)).Msg("image stored")
	return url, nil
}

// UploadSingle stores one image and returns its public URL. The declared
// size and the actual bytes are both checked against the limit before
// anything reaches the object store.
func (s *UploadService) UploadSingle(ctx context.Context, input ports.UploadInput) (string, error) {
	v, err := readAndValidate(input)
	if err != nil {
		return "", err
	}
	return s.put(ctx, v)
}

// UploadMultiple stores up to MaxJobImages images. Every file is validated
// before the first one is stored, and a store failure mid-batch removes the
// objects already written, so a rejected batch leaves nothing behind.
func (s *UploadService) UploadMultiple(ctx context.Context, inputs []ports.UploadInput) ([]string, error) {
	if len(inputs) > domain.MaxJobImages {
		return nil, domain.ErrTooManyImages
	}

	validated := make([]*validatedUpload, 0, len(inputs))
	for _, in := range inputs {
		v, err := readAndValidate(in)
		if err != nil {
			return nil, fmt.Errorf("upload %q: %w", in.Filename, err)
		}
		validated = append(validated, v)
	}

	urls := make([]string, 0, len(validated))
	for i, v := range validated {
		url, err := s.put(ctx, v)
		if err != nil {
			s.removeStored(ctx, validated[:i])
			return nil, fmt.Errorf("upload %q: %w", inputs[i].Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *UploadService) removeStored(ctx context.Context, stored []*validatedUpload) {
	for _, v := range stored {
		if err := s.store.Remove(ctx, v.key); err != nil {
			s.log.Warn().Err(err).Str("key", v.key).Msg("failed to remove orphaned object")
		}
	}
}

// buildObjectKey namespaces objects by date and random ID, keeping the
// original extension.
func buildObjectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, uuid.NewString()+ext)
}
