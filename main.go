// 命令行入口：
// - 解析 flags 与 settings.yaml，读取档案链接清单
// - 初始化日志与 HTTP 客户端，顺序执行批量采集
// - 输出进度与汇总统计，导出 Excel（可选 JSON 与价格列）
// - 支持仅解析 SteamID 的调试模式（-resolve）
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go-steam-export/internal/collect"
	"go-steam-export/internal/config"
	"go-steam-export/internal/export"
	"go-steam-export/internal/fetch"
	"go-steam-export/internal/logx"
	"go-steam-export/internal/model"
	"go-steam-export/internal/resolve"
	"go-steam-export/internal/stats"
	"go-steam-export/internal/steamapi"
	"go-steam-export/internal/storefront"
)

func main() {
	var (
		configPath  = flag.String("config", "settings.yaml", "path to settings.yaml")
		inputPath   = flag.String("input", "profiles.txt", "path to profile url list (one per line)")
		exportPath  = flag.String("export", "", "xlsx output path (default steam_data_<timestamp>.xlsx)")
		jsonPath    = flag.String("json", "", "optional data.json output path")
		withPrices  = flag.Bool("prices", false, "lookup current store prices for collected games")
		resolveOnly = flag.Bool("resolve", false, "print resolved steamids and exit")
	)
	flag.Parse()

	// 1) 加载配置与输入清单
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logx.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogColor)

	urls, err := config.LoadProfileList(*inputPath)
	if err != nil {
		log.Fatalf("load profile list: %v", err)
	}
	if len(urls) == 0 {
		log.Fatalf("no profile urls in %s", *inputPath)
	}

	// 2) 初始化 HTTP 客户端（含代理）
	cl, err := fetch.New(fetch.Options{
		ProxyHTTP:  cfg.Proxy.HTTP,
		ProxyHTTPS: cfg.Proxy.HTTPS,
		Timeout:    15 * time.Second,
	})
	if err != nil {
		log.Fatalf("http client: %v", err)
	}

	ctx := context.Background()
	if *resolveOnly {
		// 3) 调试：仅解析 SteamID 并打印后退出
		for _, u := range urls {
			id, err := resolve.SteamID(ctx, cl, u)
			if err != nil {
				logx.Errorf("解析失败：%s 错误=%v", u, err)
				continue
			}
			logx.Infof("%s -> %s", u, id)
		}
		return
	}

	// 4) 顺序采集整批档案
	api := steamapi.New(cl, cfg.APIKey)
	col := collect.New(cl, api, collect.Options{})
	runner := collect.NewRunner(col, time.Duration(cfg.Delay)*time.Second)

	logx.Infof("开始采集：共 %d 个档案，间隔 %d 秒", len(urls), cfg.Delay)
	records := runner.Run(ctx, urls, func(i, total int, rec model.Record) {
		switch {
		case rec.OK():
			logx.Infof("[%d/%d] %s 完成：游戏=%d 好友=%d 群组=%d", i+1, total,
				rec.Profile.Nickname, len(rec.Profile.Games), len(rec.Profile.Friends), len(rec.Profile.Groups))
		case rec.Status == model.StatusProfilePrivate:
			logx.Warnf("[%d/%d] %s 非公开档案，跳过", i+1, total, rec.SteamID)
		default:
			logx.Errorf("[%d/%d] %s 失败（%s）：%s", i+1, total, rec.URL, rec.Status, rec.Message)
		}
	})

	// 5) 汇总统计
	st := stats.Summarize(records)
	logx.Infof("采集完成：成功 %d/%d，游戏 %d，好友 %d，群组 %d",
		st.Succeeded, st.Total, st.Games, st.Friends, st.Groups)
	if top := stats.PerGame(records); len(top) > 0 {
		for _, g := range top[:min(5, len(top))] {
			logx.Infof("- %s：%d 分钟（%d 人拥有）", g.Name, g.Minutes, g.Players)
		}
	}

	// 6) 可选：批量查询商店价格
	var prices map[int]storefront.Price
	if *withPrices {
		prices = storefront.New(cl).Prices(ctx, distinctAppIDs(records))
		logx.Infof("已获取 %d 个应用的价格", len(prices))
	}

	// 7) 导出
	out := *exportPath
	if out == "" {
		out = fmt.Sprintf("steam_data_%s.xlsx", time.Now().Format("20060102_150405"))
	}
	if err := export.ToXLSX(records, prices, out); err != nil {
		log.Fatalf("export xlsx: %v", err)
	}
	logx.Infof("已导出 %s", out)
	if *jsonPath != "" {
		if err := export.ToJSON(records, *jsonPath); err != nil {
			log.Fatalf("export json: %v", err)
		}
		logx.Infof("已导出 %s", *jsonPath)
	}
}

// distinctAppIDs 收集整批成功记录中去重后的 AppID（保持首次出现顺序）。
func distinctAppIDs(records []model.Record) []int {
	seen := map[int]bool{}
	var out []int
	for _, r := range records {
		if !r.OK() {
			continue
		}
		for _, g := range r.Profile.Games {
			if g.AppID == 0 || seen[g.AppID] {
				continue
			}
			seen[g.AppID] = true
			out = append(out, g.AppID)
		}
	}
	return out
}
