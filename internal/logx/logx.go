// 包 logx 是对标准库 slog 的薄封装：
// - 支持级别/格式/颜色配置
// - 提供 pretty 中文输出（[调试]/[信息]/[警告]/[错误]）
// - 通过 Debugf/Infof/Warnf/Errorf 暴露，便于将来替换底层实现（DIP）
package logx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Init 根据 level/format/colorMode 初始化全局日志器。
// 采用 slog 默认 Handler（json/text）或内置 PrettyHandler（中文美化）。
func Init(level, format, colorMode string) {
	lv := parseLevel(level)
	opts := &slog.HandlerOptions{Level: lv}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = NewPrettyHandler(os.Stdout, lv, colorMode)
	}
	slog.SetDefault(slog.New(handler))
}

// parseLevel 将字符串级别解析为 slog.Leveler。
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "silent", "off":
		return slog.Level(100) // silence all
	default:
		return slog.LevelInfo
	}
}

// 便捷函数：格式化并按级别输出
func Debugf(format string, v ...any) { slog.Debug(fmt.Sprintf(format, v...)) }
func Infof(format string, v ...any)  { slog.Info(fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...any)  { slog.Warn(fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...any) { slog.Error(fmt.Sprintf(format, v...)) }

// PrettyHandler：最小可用的中文美化输出（可选彩色），仅用于人读。
type PrettyHandler struct {
	w     io.Writer
	level slog.Level
	color bool
	mu    *sync.Mutex
	attrs []slog.Attr
}

// NewPrettyHandler 创建中文美化 Handler。
func NewPrettyHandler(w io.Writer, lv slog.Level, colorMode string) slog.Handler {
	if w == nil {
		w = os.Stdout
	}
	return &PrettyHandler{w: w, level: lv, color: shouldColor(w, colorMode), mu: &sync.Mutex{}}
}

func (h *PrettyHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level && h.level < 100
}

// Handle 格式化输出：时间 + 等级 + 消息 + 扁平化属性
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	var buf bytes.Buffer
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(ts.Format("2006-01-02 15:04:05"))
	buf.WriteByte(' ')
	lvl := levelLabel(r.Level)
	if h.color {
		lvl = colorize(lvl, r.Level)
	}
	buf.WriteString(lvl)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(a.Value.String())
	}
	buf.WriteByte('\n')
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &cp
}

func (h *PrettyHandler) WithGroup(string) slog.Handler { return h }

func levelLabel(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "[调试]"
	case slog.LevelInfo:
		return "[信息]"
	case slog.LevelWarn:
		return "[警告]"
	case slog.LevelError:
		return "[错误]"
	default:
		return fmt.Sprintf("[L%d]", l)
	}
}

// shouldColor 判断是否启用颜色：遵循 LOG_COLOR 与 NO_COLOR。
func shouldColor(w io.Writer, mode string) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "auto", "":
		// 简单的 TTY 检测：仅在字符设备上启用彩色输出
		if f, ok := w.(*os.File); ok {
			if fi, err := f.Stat(); err == nil {
				return (fi.Mode() & os.ModeCharDevice) != 0
			}
		}
		return false
	default:
		return false
	}
}

// colorize 按等级包裹 ANSI 颜色码。
func colorize(s string, l slog.Level) string {
	code := "0"
	switch l {
	case slog.LevelDebug:
		code = "90"
	case slog.LevelInfo:
		code = "36"
	case slog.LevelWarn:
		code = "33"
	case slog.LevelError:
		code = "31"
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}
