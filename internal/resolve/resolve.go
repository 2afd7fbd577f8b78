// 包 resolve 将档案链接解析为 SteamID64：
// - /profiles/<数字> 形态直接截取，无需网络
// - 个性化链接（/id/<名字>）抓取档案页并从内嵌 JSON 字段中匹配
package resolve

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go-steam-export/internal/fetch"
)

var (
	profilesPath = regexp.MustCompile(`/profiles/(\d+)$`)
	embeddedID   = regexp.MustCompile(`"steamid":"(\d+)"`)
)

// ResolutionError 表示无法从链接得到 SteamID，该档案就此终止。
type ResolutionError struct {
	URL    string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve steamid from %s: %s", e.URL, e.Reason)
}

// SteamID 解析档案链接对应的 SteamID64。
func SteamID(ctx context.Context, cl *fetch.Client, profileURL string) (string, error) {
	if m := profilesPath.FindStringSubmatch(strings.TrimRight(profileURL, "/")); m != nil {
		return m[1], nil
	}
	body, err := cl.GetPage(ctx, profileURL)
	if err != nil {
		return "", &ResolutionError{URL: profileURL, Reason: err.Error()}
	}
	m := embeddedID.FindSubmatch(body)
	if m == nil {
		return "", &ResolutionError{URL: profileURL, Reason: "no embedded steamid in page"}
	}
	return string(m[1]), nil
}
