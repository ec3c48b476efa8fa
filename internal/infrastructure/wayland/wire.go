package wayland

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const headerSize = 8

var order = binary.NativeEndian

var errShortMessage = errors.New("wayland: message body too short")

// message is one decoded wire message. The header is two 32-bit words: the
// object id, then size<<16 | opcode where size includes the header.
type message struct {
	object uint32
	opcode uint16
	body   []byte
}

func readMessage(r *bufio.Reader) (message, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return message{}, err
	}

	word := order.Uint32(hdr[4:])
	size := int(word >> 16)
	if size < headerSize || size%4 != 0 {
		return message{}, fmt.Errorf("wayland: invalid message size %d", size)
	}

	msg := message{
		object: order.Uint32(hdr[:4]),
		opcode: uint16(word & 0xffff),
		body:   make([]byte, size-headerSize),
	}
	if _, err := io.ReadFull(r, msg.body); err != nil {
		return message{}, err
	}
	return msg, nil
}

// encoder appends request arguments.
type encoder struct {
	buf []byte
}

func (e *encoder) uint32(v uint32) {
	e.buf = order.AppendUint32(e.buf, v)
}

func (e *encoder) int32(v int32) {
	e.uint32(uint32(v))
}

// string writes the length including the NUL terminator, the bytes, the NUL
// and padding to a 4-byte boundary.
func (e *encoder) string(s string) {
	n := len(s) + 1
	e.uint32(uint32(n))
	e.buf = append(e.buf, s...)
	e.buf = append(e.buf, 0)
	for pad := (4 - n%4) % 4; pad > 0; pad-- {
		e.buf = append(e.buf, 0)
	}
}

func encodeMessage(object uint32, opcode uint16, args func(*encoder)) []byte {
	e := &encoder{buf: make([]byte, headerSize, 32)}
	if args != nil {
		args(e)
	}
	order.PutUint32(e.buf[:4], object)
	order.PutUint32(e.buf[4:8], uint32(len(e.buf))<<16|uint32(opcode))
	return e.buf
}

// decoder reads event arguments. The first error sticks.
type decoder struct {
	b   []byte
	err error
}

func (d *decoder) uint32() uint32 {
	if d.err != nil {
		return 0
	}
	if len(d.b) < 4 {
		d.err = errShortMessage
		return 0
	}
	v := order.Uint32(d.b)
	d.b = d.b[4:]
	return v
}

func (d *decoder) int32() int32 {
	return int32(d.uint32())
}

func (d *decoder) string() string {
	n := int(d.uint32())
	if d.err != nil {
		return ""
	}
	if n == 0 {
		return ""
	}
	padded := (n + 3) &^ 3
	if len(d.b) < padded {
		d.err = errShortMessage
		return ""
	}
	s := string(d.b[:n-1])
	d.b = d.b[padded:]
	return s
}
