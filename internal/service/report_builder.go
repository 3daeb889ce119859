package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"managerapi/internal/model"
	"managerapi/internal/repository"
	"managerapi/internal/storage"
)

const (
	reportContentType = "application/json"
	reportTimeLayout  = "20060102T150405Z"
)

var tracer = otel.Tracer("managerapi/internal/service")

// ReportBuilder computes reports from the database. It backs the report sidecar.
type ReportBuilder interface {
	// Build folds every manager into a name -> contracts count report.
	Build(ctx context.Context) (model.Report, error)

	// Snapshot builds a report and stores it as a JSON file in object storage.
	Snapshot(ctx context.Context) (*model.ReportFile, error)
}

type reportBuilder struct {
	repo   repository.ManagerRepository
	store  storage.Storage
	prefix string
	now    func() time.Time
}

// NewReportBuilder constructs a ReportBuilder writing snapshots under prefix.
func NewReportBuilder(repo repository.ManagerRepository, store storage.Storage, prefix string) ReportBuilder {
	return &reportBuilder{repo: repo, store: store, prefix: prefix, now: time.Now}
}

func (b *reportBuilder) Build(ctx context.Context) (model.Report, error) {
	managers, err := b.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load managers: %w", err)
	}
	return model.NewReport(managers), nil
}

func (b *reportBuilder) Snapshot(ctx context.Context) (*model.ReportFile, error) {
	ctx, span := tracer.Start(ctx, "ReportBuilder.Snapshot", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	report, err := b.Build(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build report")
		return nil, err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	generatedAt := b.now().UTC()
	name := "report-" + generatedAt.Format(reportTimeLayout) + ".json"
	key := b.prefix + name
	span.SetAttributes(
		attribute.String("report.key", key),
		attribute.Int("report.managers", len(report)),
	)

	info, err := b.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: reportContentType,
		Metadata: map[string]string{
			"generated-at": generatedAt.Format(time.RFC3339),
			"entries":      strconv.Itoa(len(report)),
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store report")
		return nil, fmt.Errorf("store report: %w", err)
	}

	f := toReportFile(name, info)
	return &f, nil
}
