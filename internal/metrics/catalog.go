package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type CatalogMetrics struct {
	listsServed      metric.Int64Counter
	detailsViewed    metric.Int64Counter
	listResultSize   metric.Int64Histogram
	metadataComputed metric.Int64Counter
}

func NewCatalogMetrics(meter metric.Meter) (*CatalogMetrics, error) {
	cm := &CatalogMetrics{}

	var err error

	cm.listsServed, err = meter.Int64Counter(
		"crew_service.lists.served",
		metric.WithDescription("Listing requests served, by resource"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cm.detailsViewed, err = meter.Int64Counter(
		"crew_service.details.viewed",
		metric.WithDescription("Detail lookups served, by resource"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	cm.listResultSize, err = meter.Int64Histogram(
		"crew_service.lists.result_size",
		metric.WithDescription("Number of rows returned by a listing"),
		metric.WithUnit("{row}"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100, 250, 500),
	)
	if err != nil {
		return nil, err
	}

	cm.metadataComputed, err = meter.Int64Counter(
		"crew_service.metadata.computed",
		metric.WithDescription("Slider metadata aggregations computed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return cm, nil
}

func (cm *CatalogMetrics) RecordList(ctx context.Context, resource string, size int) {
	if cm == nil || cm.listsServed == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("resource", resource))
	cm.listsServed.Add(ctx, 1, attrs)
	cm.listResultSize.Record(ctx, int64(size), attrs)
}

func (cm *CatalogMetrics) RecordDetail(ctx context.Context, resource string) {
	if cm != nil && cm.detailsViewed != nil {
		cm.detailsViewed.Add(ctx, 1, metric.WithAttributes(attribute.String("resource", resource)))
	}
}

func (cm *CatalogMetrics) RecordMetadata(ctx context.Context) {
	if cm != nil && cm.metadataComputed != nil {
		cm.metadataComputed.Add(ctx, 1)
	}
}
