package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/iWorld-y/saju_scribe/internal/logger"
)

const defaultTimeout = 5 * time.Second

// Client n8n Webhook 客户端。所有通知都是 at-most-once、
// 无送达保证：结果（成功/失败/超时）被丢弃，调用方永远看不到失败。
type Client struct {
	url    string
	client *http.Client
}

// NewClient 创建 Webhook 客户端；url 为空时所有通知都是空操作
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Notify 发出一次动作通知并立即返回。payload 会补上 action 与 timestamp 字段。
func (c *Client) Notify(action string, fields map[string]any) {
	if c == nil || c.url == "" {
		return
	}

	payload := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		payload[k] = v
	}
	payload["action"] = action
	payload["timestamp"] = time.Now().Format("2006-01-02 15:04:05")

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	go c.post(body)
}

func (c *Client) post(body []byte) {
	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		logger.Log.Debugf("webhook 通知失败（已忽略）: %v", err)
		return
	}
	res.Body.Close()
}
