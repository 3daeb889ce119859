package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"managerapi/internal/model"
	"managerapi/internal/storage"
)

// ReportSource is the remote side that computes reports and writes snapshots.
type ReportSource interface {
	Report(ctx context.Context) (model.Report, error)
	Snapshot(ctx context.Context) (*model.ReportFile, error)
}

// ReportService exposes the report sidecar and the report files it leaves in object storage.
type ReportService interface {
	// Report proxies the aggregate report from the sidecar.
	Report(ctx context.Context) (model.Report, error)

	// Generate asks the sidecar to write a new report file.
	Generate(ctx context.Context) (*model.ReportFile, error)

	// ListFiles returns stored report files, newest name first.
	ListFiles(ctx context.Context) ([]model.ReportFile, error)

	// OpenFile streams a stored report file. The caller closes the reader.
	OpenFile(ctx context.Context, name string) (io.ReadCloser, *model.ReportFile, error)

	// FileURL returns a presigned download URL and its expiry time.
	FileURL(ctx context.Context, name string) (string, time.Time, error)

	// DeleteFile removes a stored report file.
	DeleteFile(ctx context.Context, name string) error
}

type reportService struct {
	source    ReportSource
	store     storage.Storage
	prefix    string
	urlExpiry time.Duration
	now       func() time.Time
}

// NewReportService constructs a ReportService. Report files live under prefix in store.
func NewReportService(source ReportSource, store storage.Storage, prefix string, urlExpiry time.Duration) ReportService {
	return &reportService{
		source:    source,
		store:     store,
		prefix:    prefix,
		urlExpiry: urlExpiry,
		now:       time.Now,
	}
}

func (s *reportService) Report(ctx context.Context) (model.Report, error) {
	r, err := s.source.Report(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return r, nil
}

func (s *reportService) Generate(ctx context.Context) (*model.ReportFile, error) {
	f, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return f, nil
}

func (s *reportService) ListFiles(ctx context.Context) ([]model.ReportFile, error) {
	objs, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("list report files: %w", err)
	}

	files := make([]model.ReportFile, 0, len(objs))
	for _, o := range objs {
		name := strings.TrimPrefix(o.Key, s.prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		files = append(files, toReportFile(name, o))
	}
	slices.SortFunc(files, func(a, b model.ReportFile) int {
		return strings.Compare(b.Name, a.Name)
	})
	return files, nil
}

func (s *reportService) OpenFile(ctx context.Context, name string) (io.ReadCloser, *model.ReportFile, error) {
	key, err := s.fileKey(name)
	if err != nil {
		return nil, nil, err
	}
	rc, info, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("open report file: %w", err)
	}
	f := toReportFile(name, info)
	return rc, &f, nil
}

func (s *reportService) FileURL(ctx context.Context, name string) (string, time.Time, error) {
	key, err := s.fileKey(name)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := s.now().Add(s.urlExpiry)
	u, err := s.store.PresignGet(ctx, key, s.urlExpiry)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign report file: %w", err)
	}
	return u, expiresAt, nil
}

func (s *reportService) DeleteFile(ctx context.Context, name string) error {
	key, err := s.fileKey(name)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete report file: %w", err)
	}
	return nil
}

// fileKey maps a bare file name to its object key, rejecting anything that could escape the prefix.
func (s *reportService) fileKey(name string) (string, error) {
	if name == "" || name == "." || name == ".." || path.Base(name) != name || strings.Contains(name, `\`) {
		return "", ErrInvalidFileName
	}
	return s.prefix + name, nil
}

func toReportFile(name string, o storage.ObjectInfo) model.ReportFile {
	return model.ReportFile{
		Name:         name,
		Key:          o.Key,
		Size:         o.Size,
		ContentType:  o.ContentType,
		LastModified: o.LastModified,
	}
}
