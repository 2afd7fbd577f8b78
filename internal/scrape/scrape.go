// 包 scrape 负责从社区页面提取数据：
// - Games：游戏页脚本内嵌的 rgGames JSON 数组
// - Groups：档案页群组区块的固定选择器
// 返回错误与返回空列表含义不同：前者是提取失败，后者是确认没有数据。
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-steam-export/internal/fetch"
	"go-steam-export/internal/model"
)

// gamesBlock 匹配游戏页脚本中的 var rgGames = [...]; 数据块。
var gamesBlock = regexp.MustCompile(`(?s)var rgGames = (\[.+?\]);`)

// groupLinks 为档案页群组区块的选择器；社区页面结构固定，无需按主题配置。
const groupLinks = ".profile_group_links a"

// Games 抓取游戏页（games/?tab=all）并提取完整游戏列表。
// 页面不走 API 翻页上限，因此作为首选来源；hours_forever 为小时字符串，
// 在此处归一化为分钟。返回错误表示页面不可达、数据块缺失或 JSON 损坏，
// 由调用方决定是否回退到 API 来源。
func Games(ctx context.Context, cl *fetch.Client, profileURL string) ([]model.GameEntry, error) {
	gamesURL := strings.TrimRight(profileURL, "/") + "/games/?tab=all"
	body, err := cl.GetPage(ctx, gamesURL)
	if err != nil {
		return nil, fmt.Errorf("GET games page: %w", err)
	}
	m := gamesBlock.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("games page %s: no rgGames block", gamesURL)
	}
	var raw []struct {
		AppID        int    `json:"appid"`
		Name         string `json:"name"`
		HoursForever string `json:"hours_forever"`
	}
	if err := json.Unmarshal(m[1], &raw); err != nil {
		return nil, fmt.Errorf("decode rgGames: %w", err)
	}
	out := make([]model.GameEntry, 0, len(raw))
	for _, g := range raw {
		out = append(out, model.GameEntry{
			AppID:           g.AppID,
			Name:            g.Name,
			PlaytimeMinutes: model.MinutesFromHours(g.HoursForever),
		})
	}
	return out, nil
}

// Groups 抓取档案页并提取群组名称与链接。
func Groups(ctx context.Context, cl *fetch.Client, profileURL string) ([]model.GroupEntry, error) {
	body, err := cl.GetPage(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("GET profile page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse profile page html: %w", err)
	}
	var out []model.GroupEntry
	doc.Find(groupLinks).Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		href, _ := s.Attr("href")
		if name == "" && href == "" {
			return
		}
		out = append(out, model.GroupEntry{Name: name, URL: href})
	})
	return out, nil
}
