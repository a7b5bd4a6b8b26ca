package catalog

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"recipe-suggester/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Source 目錄資料來源
type Source interface {
	// Name 來源描述（用於日誌）
	Name() string
	// Load 讀取完整目錄
	Load(ctx context.Context) (*Data, error)
}

// FileSource 從 JSON 檔案載入目錄
type FileSource struct {
	path string
}

// NewFileSource 創建 JSON 檔案來源
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name 實現 Source 介面
func (s *FileSource) Name() string { return "file:" + s.path }

// Load 實現 Source 介面
func (s *FileSource) Load(ctx context.Context) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	var data Data
	if err := common.DecodeJSONStrict(f, &data); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", s.path, err)
	}
	return &data, nil
}

// HTTPSource 從遠端 JSON 快照載入目錄
type HTTPSource struct {
	url    string
	client *resty.Client
}

// NewHTTPSource 創建 HTTP 來源
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "recipe-suggester")

	return &HTTPSource{
		url:    url,
		client: client,
	}
}

// Name 實現 Source 介面
func (s *HTTPSource) Name() string { return "http:" + s.url }

// Load 實現 Source 介面
func (s *HTTPSource) Load(ctx context.Context) (*Data, error) {
	start := time.Now()

	var data Data
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&data).
		ForceContentType("application/json").
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("Catalog fetch returned non-200 status",
			zap.String("url", s.url),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode())
	}

	common.LogDebug("Catalog fetched",
		zap.String("url", s.url),
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(resp.Body())),
	)
	return &data, nil
}
