package tables

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/langchou/rentgazer/internal/models"
)

// 数据表名
const (
	TableVehicles = "vehicles"
	TableOwners   = "owners"
)

// ErrUnexpectedStatus 远端返回非 200 状态码
var ErrUnexpectedStatus = errors.New("unexpected status")

// Client 远端数据表 API 客户端
// GET {host}/tables/{name}?limit=N 返回 {"data": [...]}
type Client struct {
	httpClient *http.Client
	apiHost    string
}

// NewClient 创建客户端
func NewClient(apiHost string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiHost: strings.TrimRight(apiHost, "/"),
	}
}

// tableResponse 数据表响应结构
type tableResponse struct {
	Data json.RawMessage `json:"data"`
}

// FetchVehicles 获取车辆列表
func (c *Client) FetchVehicles(ctx context.Context, limit int) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := c.fetchTable(ctx, TableVehicles, limit, &vehicles); err != nil {
		return nil, err
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return vehicles, nil
}

// FetchOwners 获取车主列表
func (c *Client) FetchOwners(ctx context.Context, limit int) ([]models.Owner, error) {
	var owners []models.Owner
	if err := c.fetchTable(ctx, TableOwners, limit, &owners); err != nil {
		return nil, err
	}
	if owners == nil {
		owners = []models.Owner{}
	}
	return owners, nil
}

// fetchTable 读取一页数据表记录，缺失的 data 字段视为空集合
func (c *Client) fetchTable(ctx context.Context, table string, limit int, out interface{}) error {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := c.apiHost + "/tables/" + table
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", table, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Rentgazer/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("fetch %s: %w: status=%d body=%s", table, ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var tr tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}

	if len(tr.Data) == 0 || string(tr.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(tr.Data, out); err != nil {
		return fmt.Errorf("decode %s records: %w", table, err)
	}
	return nil
}
