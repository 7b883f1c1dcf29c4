package message

import (
	"errors"

	"github.com/nats-io/nats.go"

	"mjx/common/log"
)

var ErrNotConnected = errors.New("nats 未连接")

// NatsClient 只发布不订阅
type NatsClient struct {
	conn *nats.Conn
}

func NewNatsClient() *NatsClient {
	return &NatsClient{}
}

func (nc *NatsClient) IsConnected() bool {
	return nc.conn != nil && nc.conn.IsConnected()
}

func (nc *NatsClient) Run(url string) error {
	log.Info("nats 正在连接, url:%s", url)
	var err error
	nc.conn, err = nats.Connect(url, nats.Name("mjx-simulator"))
	if err != nil {
		log.Error("nats 连接错误,err:%v", err)
		return err
	}
	log.Info("nats 连接成功, url:%s", url)
	return nil
}

func (nc *NatsClient) Publish(subject string, data []byte) error {
	if !nc.IsConnected() {
		return ErrNotConnected
	}
	return nc.conn.Publish(subject, data)
}

// Close 先 flush 保证已发布的结果送达
func (nc *NatsClient) Close() error {
	if nc.conn == nil {
		return nil
	}
	if err := nc.conn.Flush(); err != nil {
		log.Warn("nats flush 出错: %v", err)
	}
	nc.conn.Close()
	log.Info("NATS 连接已关闭")
	return nil
}
