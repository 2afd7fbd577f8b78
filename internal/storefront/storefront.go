// 包 storefront 提供商店价格查询：appdetails 接口按 price_overview 过滤，
// 单次最多 50 个 AppID，批次之间保持小间隔以避开限速。
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-steam-export/internal/fetch"
	"go-steam-export/internal/logx"
)

// DefaultBase 为官方商店接口根地址。
const DefaultBase = "https://store.steampowered.com"

// batchSize 为单次请求允许的最大 AppID 数。
const batchSize = 50

// Price 为单个应用的当前价格。
type Price struct {
	Currency string  `json:"currency"`
	Final    float64 `json:"final"` // 折后价，货币主单位
}

func (p Price) String() string { return fmt.Sprintf("%.2f %s", p.Final, p.Currency) }

// Client 持有 HTTP 客户端与批次间隔。
type Client struct {
	http *fetch.Client
	// Base 为商店接口根地址，测试时指向本地服务
	Base string
	// Pause 为相邻批次间隔，默认 500ms
	Pause time.Duration
}

// New 创建商店客户端；价格查询无需 API Key。
func New(cl *fetch.Client) *Client {
	return &Client{http: cl, Base: DefaultBase, Pause: 500 * time.Millisecond}
}

// Prices 批量查询价格，按 batchSize 分批；单批失败仅告警并跳过，
// 不影响其余批次（价格是锦上添花的数据，不值得让整次导出失败）。
func (c *Client) Prices(ctx context.Context, appIDs []int) map[int]Price {
	out := make(map[int]Price)
	for start := 0; start < len(appIDs); start += batchSize {
		end := min(start+batchSize, len(appIDs))
		if start > 0 && c.Pause > 0 {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(c.Pause):
			}
		}
		if err := c.fetchBatch(ctx, appIDs[start:end], out); err != nil {
			logx.Warnf("价格批次查询失败（%d 个应用）：%v", end-start, err)
		}
	}
	return out
}

// fetchBatch 查询一批 AppID 并把结果合并进 out。
func (c *Client) fetchBatch(ctx context.Context, appIDs []int, out map[int]Price) error {
	ids := make([]string, 0, len(appIDs))
	for _, id := range appIDs {
		ids = append(ids, strconv.Itoa(id))
	}
	// 免费应用的 data 为空数组而非对象，先以 RawMessage 接住再逐个判断
	var resp map[string]struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	q := map[string]string{
		"appids":  strings.Join(ids, ","),
		"filters": "price_overview",
	}
	if err := c.http.GetJSON(ctx, c.Base+"/api/appdetails", q, &resp); err != nil {
		return err
	}
	for key, v := range resp {
		if !v.Success || len(v.Data) == 0 || v.Data[0] != '{' {
			continue
		}
		var d struct {
			PriceOverview struct {
				Currency string `json:"currency"`
				Final    int    `json:"final"` // 最小货币单位（分）
			} `json:"price_overview"`
		}
		if err := json.Unmarshal(v.Data, &d); err != nil {
			continue
		}
		id, err := strconv.Atoi(key)
		if err != nil || d.PriceOverview.Currency == "" {
			continue
		}
		out[id] = Price{Currency: d.PriceOverview.Currency, Final: float64(d.PriceOverview.Final) / 100}
	}
	return nil
}
