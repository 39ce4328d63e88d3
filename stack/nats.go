package stack

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Reply shape of NestJS microservices
type NatsNestJSRes struct {
	Err        interface{} `json:"err,omitempty"`
	Response   interface{} `json:"response"`
	IsDisposed bool        `json:"isDisposed"`
	ID         string      `json:"id"`
}

// Request shape of NestJS microservices
type NatsNestJSReq struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data,omitempty"`
}

type NatsClient struct {
	conn *nats.Conn
}

func (n *NatsClient) Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	return n.conn.Subscribe(subject, handler)
}

func (n *NatsClient) Publish(subject string, data []byte) error {
	return n.conn.Publish(subject, data)
}

func (n *NatsClient) Close() {
	n.conn.Close()
}

// ExtractData decodes the data field of a NestJS request into v
func ExtractData(data []byte, v interface{}) error {
	var request NatsNestJSReq
	if err := json.Unmarshal(data, &request); err != nil {
		return err
	}
	if len(request.Data) == 0 {
		return errors.New("nats request without data")
	}
	return json.Unmarshal(request.Data, v)
}

// EncodeNestJSReply answers the request in data. The request id is echoed
// back and a non nil err is sent as its message.
func EncodeNestJSReply(data []byte, response interface{}, err error) ([]byte, error) {
	var request NatsNestJSReq
	// Reply without id to requests that are not NestJS envelopes
	_ = json.Unmarshal(data, &request)

	reply := NatsNestJSRes{
		ID:         request.ID,
		IsDisposed: true,
	}
	if err != nil {
		reply.Err = err.Error()
	} else {
		reply.Response = response
	}
	return json.Marshal(&reply)
}

func NewNats(host string) (*NatsClient, error) {
	conn, err := nats.Connect(
		fmt.Sprintf("nats://%s", host),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second*2),
	)
	if err != nil {
		return nil, err
	}
	return &NatsClient{
		conn: conn,
	}, nil
}
