package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/muhammadolammi/portfolioparser/internal/cache"
	"github.com/muhammadolammi/portfolioparser/internal/database"
	"github.com/muhammadolammi/portfolioparser/internal/logger"
	"github.com/muhammadolammi/portfolioparser/internal/resume"
	"github.com/muhammadolammi/portfolioparser/internal/storage"
	"github.com/muhammadolammi/portfolioparser/internal/textextract"
)

var ErrUploadTooLarge = errors.New("file size exceeds the allowed limit")

// Service stores uploads and turns them into PortfolioData.
type Service struct {
	Store          storage.Store
	DB             Repository
	Cache          ResultCache // optional
	MaxUploadBytes int64
}

// Upload validates and stores a document and records it. The returned
// upload's StoredName is what clients pass back to /parse.
func (s *Service) Upload(ctx context.Context, filename string, data []byte) (database.Upload, error) {
	mime, err := textextract.MimeFor(filename)
	if err != nil {
		return database.Upload{}, err
	}
	if s.MaxUploadBytes > 0 && int64(len(data)) > s.MaxUploadBytes {
		return database.Upload{}, fmt.Errorf("%w: %d bytes", ErrUploadTooLarge, len(data))
	}

	id := uuid.New()
	storedName := id.String() + strings.ToLower(filepath.Ext(filename))
	if err := s.Store.Save(ctx, storedName, data, mime); err != nil {
		return database.Upload{}, fmt.Errorf("could not store file: %w", err)
	}

	upload, err := s.DB.CreateUpload(ctx, database.CreateUploadParams{
		ID:               id,
		OriginalFilename: filepath.Base(filename),
		StoredName:       storedName,
		Mime:             mime,
		SizeBytes:        int64(len(data)),
		StorageProvider:  s.Store.Provider(),
		ObjectKey:        storedName,
		ContentHash:      cache.ContentHash(data),
	})
	if err != nil {
		if delErr := s.Store.Delete(context.WithoutCancel(ctx), storedName); delErr != nil {
			logger.Warn().Err(delErr).Str("key", storedName).Msg("could not remove unrecorded upload")
		}
		return database.Upload{}, fmt.Errorf("could not record upload: %w", err)
	}
	return upload, nil
}

// FindUpload looks an upload up by the name returned from Upload.
func (s *Service) FindUpload(ctx context.Context, storedName string) (database.Upload, error) {
	upload, err := s.DB.GetUploadByStoredName(ctx, storedName)
	if errors.Is(err, sql.ErrNoRows) {
		return upload, fmt.Errorf("%w: %s", storage.ErrNotFound, storedName)
	}
	return upload, err
}

// ParseStored parses a previously uploaded file by its stored name.
func (s *Service) ParseStored(ctx context.Context, storedName string) (resume.PortfolioData, error) {
	upload, err := s.FindUpload(ctx, storedName)
	if err != nil {
		return resume.PortfolioData{}, err
	}
	return s.ParseUpload(ctx, upload)
}

// ParseUpload downloads, extracts and parses one upload, consulting the
// cache first when one is configured.
func (s *Service) ParseUpload(ctx context.Context, upload database.Upload) (resume.PortfolioData, error) {
	if data, ok := s.cached(ctx, upload.ContentHash); ok {
		logger.Debug().Str("file", upload.StoredName).Msg("parse result served from cache")
		return data, nil
	}

	fileBytes, err := retry(ctx, 3, func() ([]byte, error) {
		return s.Store.Load(ctx, upload.ObjectKey)
	})
	if err != nil {
		return resume.PortfolioData{}, &ParseError{FileName: upload.StoredName, Op: "download", Err: err}
	}

	text, err := textextract.FromMime(upload.Mime, fileBytes)
	if err != nil {
		return resume.PortfolioData{}, &ParseError{FileName: upload.StoredName, Op: "extract", Err: err}
	}

	data := resume.Parse(text)
	logger.Info().
		Str("file", upload.StoredName).
		Int("skills", len(data.Skills)).
		Int("education", len(data.Education)).
		Int("experience", len(data.Experience)).
		Msg("resume parsed")

	if s.Cache != nil && upload.ContentHash != "" {
		if err := s.Cache.Set(ctx, upload.ContentHash, data); err != nil {
			logger.Warn().Err(err).Str("file", upload.StoredName).Msg("could not cache parse result")
		}
	}
	return data, nil
}

func (s *Service) cached(ctx context.Context, hash string) (resume.PortfolioData, bool) {
	if s.Cache == nil || hash == "" {
		return resume.PortfolioData{}, false
	}
	data, err := s.Cache.Get(ctx, hash)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn().Err(err).Str("hash", hash).Msg("parse cache lookup failed")
		}
		return resume.PortfolioData{}, false
	}
	return data, true
}
