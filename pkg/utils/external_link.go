package utils

import (
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/ncruces/zenity"
	"github.com/pkg/browser"
)

// uriComponentReplacer 将 url.QueryEscape 的结果修正为 encodeURIComponent 的格式：
// 空格编码为 %20，且 ! ' ( ) * 保持原样
var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent 按 UTF-8 百分号编码，保留 A-Z a-z 0-9 - _ . ! ~ * ' ( )
func EncodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}

// BuildWhatsAppURL 构造消息深链 https://wa.me/<phone>?text=<message>
func BuildWhatsAppURL(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + EncodeURIComponent(message)
}

// URLOpener 打开外部链接
type URLOpener interface {
	Open(link string) error
}

// SystemURLOpener 使用系统浏览器打开链接
//
// 浏览器不可用时（如无桌面环境）降级为：
// 复制链接到剪贴板，并弹出系统通知告知用户。
type SystemURLOpener struct {
	openURL func(string) error
	copy    func(string) error
	notify  func(string) error
}

// NewSystemURLOpener 创建系统链接打开器
func NewSystemURLOpener() *SystemURLOpener {
	// 浏览器进程的输出不写入终端
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &SystemURLOpener{
		openURL: browser.OpenURL,
		copy:    clipboard.WriteAll,
		notify: func(msg string) error {
			return zenity.Notify(msg, zenity.Title("For You"), zenity.InfoIcon)
		},
	}
}

// Open 打开链接，失败时复制到剪贴板
func (o *SystemURLOpener) Open(link string) error {
	err := o.openURL(link)
	if err == nil {
		log.Printf("[ExternalLink] Opened %s", link)
		return nil
	}
	log.Printf("[ExternalLink] Browser unavailable (%v), copying link to clipboard", err)

	if copyErr := o.copy(link); copyErr != nil {
		return fmt.Errorf("failed to open link: %w (clipboard: %v)", err, copyErr)
	}
	if notifyErr := o.notify("The link was copied to your clipboard 💖"); notifyErr != nil {
		log.Printf("[ExternalLink] Notification failed: %v", notifyErr)
	}
	return nil
}
