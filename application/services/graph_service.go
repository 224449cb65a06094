package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"topicgraph-backend/application/ports"
	"topicgraph-backend/domain/config"
	"topicgraph-backend/domain/core/entities"
	domainservices "topicgraph-backend/domain/services"
	pkgerrors "topicgraph-backend/pkg/errors"
	"topicgraph-backend/pkg/observability"
)

// graphSnapshotTTL bounds the age of the adjacency snapshot. It is fixed
// internally and not part of SearchConfig: any write anywhere in the topic
// set invalidates the whole snapshot, so the window has to stay short.
const graphSnapshotTTL = time.Minute

// metricsNamespace prefixes every Prometheus metric of the service.
const metricsNamespace = "topicgraph"

// CacheStats reports the current state of the two caches.
type CacheStats struct {
	PathCacheSize    int  `json:"pathCacheSize"`
	PathCacheMaxSize int  `json:"pathCacheMaxSize"`
	GraphCacheValid  bool `json:"graphCacheValid"`
}

// GraphService answers shortest-path, connectivity, distance, and
// neighborhood queries over the undirected graph formed by topic parent
// links. It operates on a point-in-time snapshot of the topic set obtained
// through the TopicDirectory and cached for a bounded interval; it never
// mutates topic data.
type GraphService struct {
	directory  ports.TopicDirectory
	config     *config.SearchConfig
	graphCache *GraphCache
	pathCache  *PathCache
	finder     *domainservices.PathFinder
	analyzer   *domainservices.ConnectivityAnalyzer
	logger     *zap.Logger
	metrics    *observability.Collector
	tracer     trace.Tracer
}

// NewGraphService creates a graph service over the given directory. A nil
// cfg selects DefaultSearchConfig. For a non-nil cfg only omitted numeric
// options are filled with their defaults; boolean options keep the value
// they carry, since false and omitted are indistinguishable — callers that
// want the default booleans start from DefaultSearchConfig and override.
// A nil logger disables logging.
func NewGraphService(directory ports.TopicDirectory, cfg *config.SearchConfig, logger *zap.Logger) (*GraphService, error) {
	if directory == nil {
		return nil, pkgerrors.NewValidationError("topic directory is required")
	}
	if cfg == nil {
		cfg = config.DefaultSearchConfig()
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := observability.NewCollector(metricsNamespace)
	return &GraphService{
		directory:  directory,
		config:     cfg,
		graphCache: NewGraphCache(directory, graphSnapshotTTL, logger, metrics),
		pathCache:  NewPathCache(cfg.CacheMaxSize, cfg.CacheTTL, metrics),
		finder:     domainservices.NewPathFinder(cfg.MaxSearchDepth, cfg.BidirectionalSearch),
		analyzer:   domainservices.NewConnectivityAnalyzer(),
		logger:     logger,
		metrics:    metrics,
		tracer:     otel.Tracer("topicgraph-backend"),
	}, nil
}

// ShortestPath returns one shortest path between two topics as full topic
// records, endpoints included. An empty result means the topics are
// disconnected (or connected only beyond the search depth); that is a valid
// outcome, not an error.
func (s *GraphService) ShortestPath(ctx context.Context, startID, endID string) ([]*entities.Topic, error) {
	ctx, span := s.tracer.Start(ctx, "GraphService.ShortestPath", trace.WithAttributes(
		attribute.String("topic.start", startID),
		attribute.String("topic.end", endID),
	))
	defer span.End()
	defer s.observe("shortest_path")()

	if startID == "" {
		return nil, pkgerrors.NewValidationError("start topic ID is required")
	}
	if endID == "" {
		return nil, pkgerrors.NewValidationError("end topic ID is required")
	}

	startTopic, err := s.directory.FindCurrent(ctx, startID)
	if err != nil {
		return nil, pkgerrors.NewDirectoryError("find start topic", err)
	}
	if startTopic == nil {
		return nil, pkgerrors.NewNotFoundError("start topic " + startID)
	}

	if startID == endID {
		path := []string{startID}
		if s.config.CacheEnabled {
			if _, ok := s.pathCache.Get(startID, endID); !ok {
				s.pathCache.Put(startID, endID, path)
			}
		}
		return []*entities.Topic{startTopic}, nil
	}

	endTopic, err := s.directory.FindCurrent(ctx, endID)
	if err != nil {
		return nil, pkgerrors.NewDirectoryError("find end topic", err)
	}
	if endTopic == nil {
		return nil, pkgerrors.NewNotFoundError("end topic " + endID)
	}

	if s.config.CacheEnabled {
		if cached, ok := s.pathCache.Get(startID, endID); ok {
			return s.materialize(ctx, cached)
		}
	}

	graph, err := s.graphCache.GetOrBuild(ctx)
	if err != nil {
		return nil, err
	}

	startIdx, ok := graph.IndexOf(startID)
	if !ok {
		return []*entities.Topic{}, nil
	}
	endIdx, ok := graph.IndexOf(endID)
	if !ok {
		return []*entities.Topic{}, nil
	}

	indices := s.finder.ShortestPath(graph, startIdx, endIdx)
	if len(indices) == 0 {
		return []*entities.Topic{}, nil
	}

	path := graph.IDsOf(indices)
	if s.config.CacheEnabled {
		s.pathCache.Put(startID, endID, path)
	}
	return s.materialize(ctx, path)
}

// AreConnected reports whether a path exists between two topics. Any
// underlying error is deliberately downgraded to false: this is a cheap
// boolean probe, not a diagnostic.
func (s *GraphService) AreConnected(ctx context.Context, a, b string) bool {
	path, err := s.ShortestPath(ctx, a, b)
	if err != nil {
		s.logger.Debug("connectivity probe failed",
			zap.String("startID", a),
			zap.String("endID", b),
			zap.String("errorType", string(pkgerrors.GetType(err))),
			zap.Error(err),
		)
		return false
	}
	return len(path) > 0
}

// Distance returns the number of hops between two topics: 0 when a equals b,
// -1 when they are disconnected.
func (s *GraphService) Distance(ctx context.Context, a, b string) (int, error) {
	path, err := s.ShortestPath(ctx, a, b)
	if err != nil {
		return 0, err
	}
	if len(path) == 0 {
		return -1, nil
	}
	return len(path) - 1, nil
}

// TopicsWithinDistance returns every topic reachable from center in at most
// maxDistance hops, center first. A maxDistance of zero returns only the
// center; a negative maxDistance is an input error.
func (s *GraphService) TopicsWithinDistance(ctx context.Context, centerID string, maxDistance int) ([]*entities.Topic, error) {
	ctx, span := s.tracer.Start(ctx, "GraphService.TopicsWithinDistance", trace.WithAttributes(
		attribute.String("topic.center", centerID),
		attribute.Int("distance.max", maxDistance),
	))
	defer span.End()
	defer s.observe("topics_within_distance")()

	if centerID == "" {
		return nil, pkgerrors.NewValidationError("center topic ID is required")
	}
	if maxDistance < 0 {
		return nil, pkgerrors.NewValidationError("max distance cannot be negative").
			WithDetails(map[string]interface{}{"maxDistance": maxDistance})
	}

	center, err := s.directory.FindCurrent(ctx, centerID)
	if err != nil {
		return nil, pkgerrors.NewDirectoryError("find center topic", err)
	}
	if center == nil {
		return nil, pkgerrors.NewNotFoundError("center topic " + centerID)
	}

	graph, err := s.graphCache.GetOrBuild(ctx)
	if err != nil {
		return nil, err
	}

	centerIdx, ok := graph.IndexOf(centerID)
	if !ok {
		return []*entities.Topic{center}, nil
	}

	indices := s.finder.WithinDistance(graph, centerIdx, maxDistance)
	return s.materialize(ctx, graph.IDsOf(indices))
}

// ValidateConnectivity analyzes the component structure of the whole graph.
func (s *GraphService) ValidateConnectivity(ctx context.Context) (domainservices.ConnectivityReport, error) {
	ctx, span := s.tracer.Start(ctx, "GraphService.ValidateConnectivity")
	defer span.End()
	defer s.observe("validate_connectivity")()

	graph, err := s.graphCache.GetOrBuild(ctx)
	if err != nil {
		return domainservices.ConnectivityReport{}, err
	}
	return s.analyzer.Analyze(graph), nil
}

// ClearCache drops both the path cache and the graph snapshot.
func (s *GraphService) ClearCache() {
	s.pathCache.Clear()
	s.graphCache.Invalidate()
}

// CacheStats returns the current cache state.
func (s *GraphService) CacheStats() CacheStats {
	return CacheStats{
		PathCacheSize:    s.pathCache.Len(),
		PathCacheMaxSize: s.pathCache.MaxSize(),
		GraphCacheValid:  s.graphCache.Valid(),
	}
}

// Metrics returns the service's Prometheus collector; the embedding
// application mounts its Registry on a scrape endpoint.
func (s *GraphService) Metrics() *observability.Collector {
	return s.metrics
}

// observe returns a func that records the elapsed duration of one operation,
// for use with defer.
func (s *GraphService) observe(operation string) func() {
	start := time.Now()
	return func() {
		s.metrics.RecordSearch(operation, time.Since(start))
	}
}

// materialize converts node IDs back to full topic records through the
// directory. A cached path can reference a topic deleted after the path was
// computed; such records are skipped with a warning rather than failing the
// whole query.
func (s *GraphService) materialize(ctx context.Context, ids []string) ([]*entities.Topic, error) {
	topics := make([]*entities.Topic, 0, len(ids))
	for _, id := range ids {
		topic, err := s.directory.FindCurrent(ctx, id)
		if err != nil {
			return nil, pkgerrors.NewDirectoryError("find topic "+id, err)
		}
		if topic == nil {
			s.logger.Warn("topic disappeared during path materialization",
				zap.String("topicID", id),
			)
			continue
		}
		topics = append(topics, topic)
	}
	return topics, nil
}
