package system

import (
	"context"
	"fmt"
)

// RAM is a flat 64K address space implementing Memory. CALL records the
// address and runs OnCall when it is set.
type RAM struct {
	bytes [MemorySize]byte

	// Calls lists the addresses passed to Call, in order.
	Calls []int

	// OnCall, if set, is run for every Call.
	OnCall func(ctx context.Context, addr int) error
}

// NewRAM returns zeroed memory.
func NewRAM() *RAM {
	return &RAM{}
}

func checkAddr(addr int) error {
	if addr < 0 || addr >= MemorySize {
		return fmt.Errorf("address %d out of range", addr)
	}
	return nil
}

func (m *RAM) Peek(addr int) (byte, error) {
	if err := checkAddr(addr); err != nil {
		return 0, err
	}
	return m.bytes[addr], nil
}

func (m *RAM) Poke(addr int, value byte) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	m.bytes[addr] = value
	return nil
}

func (m *RAM) Call(ctx context.Context, addr int) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	m.Calls = append(m.Calls, addr)
	if m.OnCall != nil {
		return m.OnCall(ctx, addr)
	}
	return nil
}

var _ Memory = (*RAM)(nil)
