package transport

import (
	"net"

	"github.com/chabad360/osc-codec/osc"
)

// Client writes packets to one UDP peer, each packet as a single datagram.
type Client struct {
	conn *net.UDPConn
}

// Dial resolves addr and connects a UDP socket to it. No packet is sent.
func Dial(addr string) (*Client, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Send encodes packet and writes it to the peer. Encodings larger than
// MaxPacketSize fail with ErrPacketTooLarge before anything is written.
func (c *Client) Send(packet osc.Packet) error {
	data := osc.EncodePacket(packet)
	if len(data) > MaxPacketSize {
		return ErrPacketTooLarge
	}
	_, err := c.conn.Write(data)
	return err
}

func (c *Client) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

func (c *Client) Close() error {
	return c.conn.Close()
}
