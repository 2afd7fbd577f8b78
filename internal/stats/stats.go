// 包 stats 提供批量结果之上的纯聚合函数：
// 只读取记录，不做网络与落盘，排序稳定（并列时保持输入顺序）。
package stats

import (
	"sort"
	"time"

	"go-steam-export/internal/model"
)

// GameAggregate 为单款游戏的跨档案汇总。
type GameAggregate struct {
	Name    string
	Minutes int // 总时长（分钟）
	Players int // 拥有该游戏的档案数
}

// PerGame 按游戏名汇总总时长与拥有人数，按总时长降序排列。
func PerGame(records []model.Record) []GameAggregate {
	type acc struct {
		minutes int
		players int
	}
	m := map[string]*acc{}
	var order []string
	for _, r := range records {
		if !r.OK() {
			continue
		}
		seen := map[string]bool{}
		for _, g := range r.Profile.Games {
			a, ok := m[g.Name]
			if !ok {
				a = &acc{}
				m[g.Name] = a
				order = append(order, g.Name)
			}
			a.minutes += g.PlaytimeMinutes
			if !seen[g.Name] {
				a.players++
				seen[g.Name] = true
			}
		}
	}
	out := make([]GameAggregate, 0, len(order))
	for _, name := range order {
		out = append(out, GameAggregate{Name: name, Minutes: m[name].minutes, Players: m[name].players})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Minutes > out[j].Minutes })
	return out
}

// CountryCount 为一个国家/地区的成功档案数。
type CountryCount struct {
	Country string
	Count   int
}

// PerCountry 统计成功档案的国家分布，未填写国家归入空串，按数量降序。
func PerCountry(records []model.Record) []CountryCount {
	m := map[string]int{}
	var order []string
	for _, r := range records {
		if !r.OK() {
			continue
		}
		c := r.Profile.Country
		if _, ok := m[c]; !ok {
			order = append(order, c)
		}
		m[c]++
	}
	out := make([]CountryCount, 0, len(order))
	for _, c := range order {
		out = append(out, CountryCount{Country: c, Count: m[c]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// LeaderboardEntry 为排行榜中的一行。
type LeaderboardEntry struct {
	SteamID  string
	Nickname string
	Minutes  int
}

// Leaderboard 统计每个成功档案在指定 AppID 集合内的总时长并降序排列；
// 时长相同的档案按输入顺序保持稳定。
func Leaderboard(records []model.Record, appIDs []int) []LeaderboardEntry {
	set := make(map[int]bool, len(appIDs))
	for _, id := range appIDs {
		set[id] = true
	}
	var out []LeaderboardEntry
	for _, r := range records {
		if !r.OK() {
			continue
		}
		total := 0
		for _, g := range r.Profile.Games {
			if set[g.AppID] {
				total += g.PlaytimeMinutes
			}
		}
		out = append(out, LeaderboardEntry{SteamID: r.SteamID, Nickname: r.Profile.Nickname, Minutes: total})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Minutes > out[j].Minutes })
	return out
}

// Summarize 计算整批的汇总统计。
func Summarize(records []model.Record) model.Stats {
	st := model.Stats{Total: len(records), UpdatedAt: time.Now()}
	for _, r := range records {
		if !r.OK() {
			st.Failed++
			continue
		}
		st.Succeeded++
		st.Games += len(r.Profile.Games)
		st.Friends += len(r.Profile.Friends)
		st.Groups += len(r.Profile.Groups)
	}
	return st
}
