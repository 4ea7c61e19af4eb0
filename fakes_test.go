package main

import (
	"archive/zip"
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"html"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/portfolioparser/internal/cache"
	"github.com/muhammadolammi/portfolioparser/internal/database"
	"github.com/muhammadolammi/portfolioparser/internal/resume"
	"github.com/muhammadolammi/portfolioparser/internal/storage"
	"github.com/stretchr/testify/require"
)

var sampleResumeLines = []string{
	"John Doe",
	"john@example.com",
	"555-123-4567",
	"Skills",
	"Java, Python, SQL",
	"Education",
	"Bachelor of Science, MIT, 2020",
	"Experience",
	"Software Engineer at Acme Corp 2020-present",
}

// docxOf builds a minimal .docx with one paragraph per line.
func docxOf(t *testing.T, lines ...string) []byte {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, l := range lines {
		body.WriteString(`<w:p><w:r><w:t>` + html.EscapeString(l) + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"word/document.xml":            body.String(),
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// memRepo is an in-memory Repository.
type memRepo struct {
	mu      sync.Mutex
	uploads map[uuid.UUID]database.Upload
	jobs    map[uuid.UUID]database.ParseJob
	// statuses records every status a job passed through, in order.
	statuses map[uuid.UUID][]string

	createJobErr    error
	createUploadErr error
	failJobErr      error
	completeErrs    int // number of CompleteParseJob calls to fail before succeeding
}

func newMemRepo() *memRepo {
	return &memRepo{
		uploads:  map[uuid.UUID]database.Upload{},
		jobs:     map[uuid.UUID]database.ParseJob{},
		statuses: map[uuid.UUID][]string{},
	}
}

func (r *memRepo) CreateUpload(_ context.Context, arg database.CreateUploadParams) (database.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createUploadErr != nil {
		return database.Upload{}, r.createUploadErr
	}
	u := database.Upload{
		ID:               arg.ID,
		OriginalFilename: arg.OriginalFilename,
		StoredName:       arg.StoredName,
		Mime:             arg.Mime,
		SizeBytes:        arg.SizeBytes,
		StorageProvider:  arg.StorageProvider,
		ObjectKey:        arg.ObjectKey,
		ContentHash:      arg.ContentHash,
		CreatedAt:        time.Now(),
	}
	r.uploads[u.ID] = u
	return u, nil
}

func (r *memRepo) GetUpload(_ context.Context, id uuid.UUID) (database.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.uploads[id]
	if !ok {
		return u, sql.ErrNoRows
	}
	return u, nil
}

func (r *memRepo) GetUploadByStoredName(_ context.Context, storedName string) (database.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.uploads {
		if u.StoredName == storedName {
			return u, nil
		}
	}
	return database.Upload{}, sql.ErrNoRows
}

func (r *memRepo) CreateParseJob(_ context.Context, arg database.CreateParseJobParams) (database.ParseJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createJobErr != nil {
		return database.ParseJob{}, r.createJobErr
	}
	j := database.ParseJob{
		ID:        arg.ID,
		UploadID:  arg.UploadID,
		Status:    StatusQueued,
		Result:    json.RawMessage("null"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.jobs[j.ID] = j
	r.statuses[j.ID] = append(r.statuses[j.ID], StatusQueued)
	return j, nil
}

func (r *memRepo) GetParseJob(_ context.Context, id uuid.UUID) (database.ParseJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return j, sql.ErrNoRows
	}
	return j, nil
}

func (r *memRepo) UpdateParseJobStatus(_ context.Context, arg database.UpdateParseJobStatusParams) error {
	return r.update(arg.ID, func(j *database.ParseJob) { j.Status = arg.Status })
}

func (r *memRepo) CompleteParseJob(_ context.Context, arg database.CompleteParseJobParams) error {
	r.mu.Lock()
	if r.completeErrs > 0 {
		r.completeErrs--
		r.mu.Unlock()
		return errors.New("connection reset")
	}
	r.mu.Unlock()
	return r.update(arg.ID, func(j *database.ParseJob) {
		j.Status = StatusCompleted
		j.Result = arg.Result
		j.Error = sql.NullString{}
	})
}

func (r *memRepo) FailParseJob(_ context.Context, arg database.FailParseJobParams) error {
	if r.failJobErr != nil {
		return r.failJobErr
	}
	return r.update(arg.ID, func(j *database.ParseJob) {
		j.Status = StatusFailed
		j.Error = sql.NullString{String: arg.Error, Valid: true}
	})
}

func (r *memRepo) update(id uuid.UUID, fn func(*database.ParseJob)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return sql.ErrNoRows
	}
	fn(&j)
	j.UpdatedAt = time.Now()
	r.jobs[id] = j
	r.statuses[id] = append(r.statuses[id], j.Status)
	return nil
}

type fakePublisher struct {
	mu      sync.Mutex
	jobs    []ParseJobMessage
	updates []ParseUpdate
	jobErr  error
}

func (p *fakePublisher) PublishJob(job ParseJobMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.jobErr != nil {
		return p.jobErr
	}
	p.jobs = append(p.jobs, job)
	return nil
}

func (p *fakePublisher) PublishUpdate(update ParseUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, update)
	return nil
}

func (p *fakePublisher) statuses() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, u := range p.updates {
		out = append(out, u.Status)
	}
	return out
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]resume.PortfolioData
	sets int
}

func (c *mapCache) Get(_ context.Context, hash string) (resume.PortfolioData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[hash]
	if !ok {
		return d, cache.ErrMiss
	}
	return d, nil
}

func (c *mapCache) Set(_ context.Context, hash string, data resume.PortfolioData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = map[string]resume.PortfolioData{}
	}
	c.data[hash] = data
	c.sets++
	return nil
}

func newTestService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	repo := newMemRepo()
	return &Service{Store: store, DB: repo, MaxUploadBytes: 1 << 20}, repo
}

// ctxRepo fails every call whose context is already done, like a real
// database driver does.
type ctxRepo struct {
	*memRepo
}

func (r ctxRepo) GetUpload(ctx context.Context, id uuid.UUID) (database.Upload, error) {
	if err := ctx.Err(); err != nil {
		return database.Upload{}, err
	}
	return r.memRepo.GetUpload(ctx, id)
}

func (r ctxRepo) UpdateParseJobStatus(ctx context.Context, arg database.UpdateParseJobStatusParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.memRepo.UpdateParseJobStatus(ctx, arg)
}

func (r ctxRepo) CompleteParseJob(ctx context.Context, arg database.CompleteParseJobParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.memRepo.CompleteParseJob(ctx, arg)
}

func (r ctxRepo) FailParseJob(ctx context.Context, arg database.FailParseJobParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.memRepo.FailParseJob(ctx, arg)
}

// cancelOnLoad cancels the worker context as soon as a download starts,
// then serves the object anyway.
type cancelOnLoad struct {
	storage.Store
	cancel context.CancelFunc
}

func (s cancelOnLoad) Load(ctx context.Context, key string) ([]byte, error) {
	s.cancel()
	return s.Store.Load(ctx, key)
}
