// 包 collect 负责采集编排：
// - Collector 将单条档案链接采集为一条完整记录（隐私门禁、游戏来源回退、局部兜底）
// - Runner 顺序处理整批输入，保证“一行输入恰好一条记录”
package collect

import (
	"context"
	"time"

	"go-steam-export/internal/fetch"
	"go-steam-export/internal/logx"
	"go-steam-export/internal/model"
	"go-steam-export/internal/resolve"
	"go-steam-export/internal/scrape"
	"go-steam-export/internal/steamapi"
)

// Collector 对单个档案依次执行全部适配器并组装记录。
type Collector struct {
	http  *fetch.Client
	api   *steamapi.Client
	pause time.Duration
}

// Options 为采集器构造参数。
type Options struct {
	// Pause 为相邻适配器调用间的停顿，默认 500ms，用于控制对平台的请求频率
	Pause time.Duration
}

// New 创建 Collector。
func New(cl *fetch.Client, api *steamapi.Client, opts Options) *Collector {
	p := opts.Pause
	if p == 0 {
		p = 500 * time.Millisecond
	}
	return &Collector{http: cl, api: api, pause: p}
}

// Collect 采集单个档案。任何失败都折叠为对应状态的记录，绝不向上抛错：
// 1. 解析 SteamID，失败 → RESOLUTION_FAILED
// 2. 查询概要；查无此人或非公开 → PROFILE_PRIVATE，后续适配器一律不再调用
// 3. 游戏列表：优先页面抓取，仅在抓取失败时回退 API（“确认为空”不触发回退）
// 4. 等级失败 → COLLECTION_FAILED；好友/群组/近两周失败降级为空列表
func (c *Collector) Collect(ctx context.Context, profileURL string) model.Record {
	rec := model.Record{URL: profileURL, CollectedAt: time.Now()}

	id, err := resolve.SteamID(ctx, c.http, profileURL)
	if err != nil {
		rec.Status = model.StatusResolutionFailed
		rec.Message = err.Error()
		return rec
	}
	rec.SteamID = id

	sum, err := c.api.PlayerSummary(ctx, id)
	c.wait(ctx)
	if err != nil {
		rec.Status = model.StatusCollectionFailed
		rec.Message = err.Error()
		return rec
	}
	// 隐私门禁：非公开档案的游戏/好友/群组数据不可靠，直接终止。
	// 隐私状态不是瞬态，不做重试。
	if !sum.Public() {
		rec.Status = model.StatusProfilePrivate
		return rec
	}

	p := &model.Profile{
		Nickname: sum.Nickname,
		Avatar:   sum.Avatar,
		Country:  sum.Country,
	}

	games, err := scrape.Games(ctx, c.http, profileURL)
	c.wait(ctx)
	if err != nil {
		logx.Debugf("[%s] 页面抓取游戏失败，回退 API：%v", id, err)
		games, err = c.api.OwnedGames(ctx, id)
		c.wait(ctx)
		if err != nil {
			// 两个来源都不可用：保留档案其余数据，游戏列表为空
			logx.Warnf("[%s] API 获取游戏失败：%v", id, err)
			games = nil
		}
	}
	p.Games = games

	level, err := c.api.PlayerLevel(ctx, id)
	c.wait(ctx)
	if err != nil {
		rec.Status = model.StatusCollectionFailed
		rec.Message = err.Error()
		return rec
	}
	p.Level = level

	// 好友/群组/近两周记录相互独立：失败降级为空列表，保留已取得的部分数据
	if friends, err := c.api.FriendList(ctx, id); err != nil {
		logx.Warnf("[%s] 获取好友失败：%v", id, err)
	} else {
		p.Friends = friends
	}
	c.wait(ctx)

	if groups, err := scrape.Groups(ctx, c.http, profileURL); err != nil {
		logx.Warnf("[%s] 获取群组失败：%v", id, err)
	} else {
		p.Groups = groups
	}
	c.wait(ctx)

	if recent, err := c.api.RecentlyPlayed(ctx, id); err != nil {
		logx.Warnf("[%s] 获取近两周记录失败：%v", id, err)
	} else {
		p.Recent = recent
	}
	c.wait(ctx)

	rec.Status = model.StatusOK
	rec.Profile = p
	return rec
}

// wait 在相邻适配器调用之间停顿，遵循上下文取消。
func (c *Collector) wait(ctx context.Context) {
	if c.pause <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(c.pause):
	}
}
