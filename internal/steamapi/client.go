// 包 steamapi 封装平台 Web API 的只读端点适配器
// （概要/等级/已拥有游戏/好友/近两周记录）。
// 每个适配器只做“请求 + 映射”，错误一律上抛，由采集器决定兜底策略。
package steamapi

import (
	"context"
	"time"

	"go-steam-export/internal/fetch"
	"go-steam-export/internal/model"
)

// DefaultBase 为官方 Web API 根地址。
const DefaultBase = "https://api.steampowered.com"

// VisibilityPublic 为平台标记“公开档案”的可见性取值。
const VisibilityPublic = 3

// Client 持有 HTTP 客户端与访问凭据。
type Client struct {
	http *fetch.Client
	key  string
	// Base 为 API 根地址，默认官方端点；测试时指向本地服务
	Base string
}

// New 创建 API 客户端。
func New(cl *fetch.Client, key string) *Client {
	return &Client{http: cl, key: key, Base: DefaultBase}
}

// Summary 为玩家概要（GetPlayerSummaries）。
type Summary struct {
	Nickname   string
	Avatar     string
	Country    string
	Visibility int
}

// Public 报告档案可见性是否为公开。
func (s *Summary) Public() bool { return s != nil && s.Visibility == VisibilityPublic }

// PlayerSummary 查询玩家概要；平台查无此人时返回 nil。
func (c *Client) PlayerSummary(ctx context.Context, steamID string) (*Summary, error) {
	var resp struct {
		Response struct {
			Players []struct {
				PersonaName              string `json:"personaname"`
				AvatarFull               string `json:"avatarfull"`
				LocCountryCode           string `json:"loccountrycode"`
				CommunityVisibilityState int    `json:"communityvisibilitystate"`
			} `json:"players"`
		} `json:"response"`
	}
	q := map[string]string{"key": c.key, "steamids": steamID}
	if err := c.http.GetJSON(ctx, c.Base+"/ISteamUser/GetPlayerSummaries/v2/", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Response.Players) == 0 {
		return nil, nil
	}
	p := resp.Response.Players[0]
	return &Summary{
		Nickname:   p.PersonaName,
		Avatar:     p.AvatarFull,
		Country:    p.LocCountryCode,
		Visibility: p.CommunityVisibilityState,
	}, nil
}

// PlayerLevel 查询社区等级；响应缺失该字段时返回 0。
func (c *Client) PlayerLevel(ctx context.Context, steamID string) (int, error) {
	var resp struct {
		Response struct {
			PlayerLevel int `json:"player_level"`
		} `json:"response"`
	}
	q := map[string]string{"key": c.key, "steamid": steamID}
	if err := c.http.GetJSON(ctx, c.Base+"/IPlayerService/GetSteamLevel/v1/", q, &resp); err != nil {
		return 0, err
	}
	return resp.Response.PlayerLevel, nil
}

// OwnedGames 查询已拥有游戏（含应用信息与已游玩的免费游戏）。
// playtime_forever 本身即为分钟，直接取用，不做换算。
func (c *Client) OwnedGames(ctx context.Context, steamID string) ([]model.GameEntry, error) {
	var resp struct {
		Response struct {
			Games []struct {
				AppID           int    `json:"appid"`
				Name            string `json:"name"`
				PlaytimeForever int    `json:"playtime_forever"`
			} `json:"games"`
		} `json:"response"`
	}
	q := map[string]string{
		"key":                       c.key,
		"steamid":                   steamID,
		"include_appinfo":           "true",
		"include_played_free_games": "true",
	}
	if err := c.http.GetJSON(ctx, c.Base+"/IPlayerService/GetOwnedGames/v1/", q, &resp); err != nil {
		return nil, err
	}
	out := make([]model.GameEntry, 0, len(resp.Response.Games))
	for _, g := range resp.Response.Games {
		out = append(out, model.GameEntry{AppID: g.AppID, Name: g.Name, PlaytimeMinutes: g.PlaytimeForever})
	}
	return out, nil
}

// FriendList 查询已确认的好友关系（relationship=friend）。
func (c *Client) FriendList(ctx context.Context, steamID string) ([]model.FriendEntry, error) {
	var resp struct {
		FriendsList struct {
			Friends []struct {
				SteamID     string `json:"steamid"`
				FriendSince int64  `json:"friend_since"`
			} `json:"friends"`
		} `json:"friendslist"`
	}
	q := map[string]string{"key": c.key, "steamid": steamID, "relationship": "friend"}
	if err := c.http.GetJSON(ctx, c.Base+"/ISteamUser/GetFriendList/v1/", q, &resp); err != nil {
		return nil, err
	}
	out := make([]model.FriendEntry, 0, len(resp.FriendsList.Friends))
	for _, f := range resp.FriendsList.Friends {
		out = append(out, model.FriendEntry{SteamID: f.SteamID, FriendSince: time.Unix(f.FriendSince, 0)})
	}
	return out, nil
}

// RecentlyPlayed 查询近两周游玩记录（playtime_2weeks，单位分钟）。
func (c *Client) RecentlyPlayed(ctx context.Context, steamID string) ([]model.GameEntry, error) {
	var resp struct {
		Response struct {
			Games []struct {
				AppID          int    `json:"appid"`
				Name           string `json:"name"`
				Playtime2Weeks int    `json:"playtime_2weeks"`
			} `json:"games"`
		} `json:"response"`
	}
	q := map[string]string{"key": c.key, "steamid": steamID}
	if err := c.http.GetJSON(ctx, c.Base+"/IPlayerService/GetRecentlyPlayedGames/v1/", q, &resp); err != nil {
		return nil, err
	}
	out := make([]model.GameEntry, 0, len(resp.Response.Games))
	for _, g := range resp.Response.Games {
		out = append(out, model.GameEntry{AppID: g.AppID, Name: g.Name, PlaytimeMinutes: g.Playtime2Weeks})
	}
	return out, nil
}
