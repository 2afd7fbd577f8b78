package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadProfileList 读取档案链接清单：每行一个链接，空行与 # 注释跳过。
// 返回顺序与文件行序一致，后续采集严格按该顺序进行。
func LoadProfileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile list %s: %w", path, err)
	}
	defer f.Close()
	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read profile list %s: %w", path, err)
	}
	return urls, nil
}
