package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/langchou/rentgazer/internal/catalog"
	"github.com/langchou/rentgazer/internal/metrics"
	"github.com/langchou/rentgazer/internal/models"
	"github.com/langchou/rentgazer/internal/state"
)

// LoadFailedMessage 加载失败时展示给用户的提示
const LoadFailedMessage = "Error loading vehicles. Please refresh the page."

var (
	// ErrFetchFailed 任一集合读取失败，本次加载终止
	ErrFetchFailed = errors.New("catalog fetch failed")
	// ErrNotReady 目录尚未加载完成
	ErrNotReady = errors.New("catalog not ready")
	// ErrAlreadyLoaded 目录只允许加载一次
	ErrAlreadyLoaded = errors.New("catalog already loaded")
)

// CatalogService 目录服务：启动时加载一次，之后只读
type CatalogService struct {
	logger  *zap.Logger
	fetcher catalog.Fetcher
	source  string
	limit   int
	machine *state.Machine

	mu      sync.RWMutex
	catalog *catalog.Catalog
}

// NewCatalogService 创建目录服务
func NewCatalogService(logger *zap.Logger, fetcher catalog.Fetcher, source string, limit int) *CatalogService {
	svc := &CatalogService{
		logger:  logger,
		fetcher: fetcher,
		source:  source,
		limit:   limit,
	}
	svc.machine = state.NewMachine(svc.onStateChange)
	return svc
}

// onStateChange 状态变化回调，在状态机锁内执行，不能回调状态机
func (s *CatalogService) onStateChange(from, to string) {
	s.logger.Info("Catalog state changed",
		zap.String("from", from),
		zap.String("to", to),
	)
}

// Load 并发读取车辆与车主
// 任一读取失败即整体失败，不合并部分结果，也不重试
func (s *CatalogService) Load(ctx context.Context) error {
	if err := s.machine.StartLoad(); err != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyLoaded, s.machine.Current())
	}

	start := time.Now()
	s.logger.Info("Loading catalog", zap.String("source", s.source), zap.Int("limit", s.limit))

	var (
		vehicles []models.Vehicle
		owners   []models.Owner
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vehicles, err = s.fetcher.FetchVehicles(gctx, s.limit)
		metrics.RecordFetch(s.source, "vehicles", err)
		if err != nil {
			return fmt.Errorf("fetch vehicles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		owners, err = s.fetcher.FetchOwners(gctx, s.limit)
		metrics.RecordFetch(s.source, "owners", err)
		if err != nil {
			return fmt.Errorf("fetch owners: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load catalog", zap.Error(err))
		if markErr := s.machine.MarkFailed(err); markErr != nil {
			s.logger.Warn("Failed to record load failure", zap.Error(markErr))
		}
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	c := catalog.New(vehicles, owners)

	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()

	if err := s.machine.MarkLoaded(); err != nil {
		return fmt.Errorf("mark catalog loaded: %w", err)
	}

	metrics.RecordLoad(time.Since(start).Seconds(), len(vehicles), len(owners))
	s.logger.Info("Catalog loaded",
		zap.Int("vehicles", len(vehicles)),
		zap.Int("owners", len(owners)),
		zap.Int("locations", len(c.Locations())),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// Catalog 已加载的目录
// 加载失败时返回 ErrFetchFailed，尚未加载时返回 ErrNotReady
func (s *CatalogService) Catalog() (*catalog.Catalog, error) {
	switch s.machine.Current() {
	case state.StateReady:
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.catalog, nil
	case state.StateFailed:
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, s.machine.Err())
	default:
		return nil, ErrNotReady
	}
}

// Status 加载状态
func (s *CatalogService) Status() state.LoadStatus {
	return s.machine.Status()
}

// NewSession 为一个页面会话创建视图状态
func (s *CatalogService) NewSession() (*catalog.ViewState, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return catalog.NewViewStateFromCatalog(c, catalog.WithRecomputeHook(func(visible int) {
		metrics.RecordRecompute("session", visible)
	})), nil
}

// Filter 无状态筛选，用于 HTTP 查询
func (s *CatalogService) Filter(f catalog.FilterState) ([]models.Vehicle, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	visible := c.Filter(f)
	metrics.RecordRecompute("http", len(visible))
	return visible, nil
}
