package lcd

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultAddress is the usual address of a PCF8574 backpack.
const DefaultAddress uint16 = 0x27

// Bus is an I2C expander at a fixed address on an open host bus.
type Bus struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// OpenI2C opens the named host bus ("" picks the first one).
func OpenI2C(name string, addr uint16) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}

	return &Bus{bus: bus, dev: &i2c.Dev{Bus: bus, Addr: addr}}, nil
}

func (b *Bus) Write(p []byte) (int, error) {
	return b.dev.Write(p)
}

func (b *Bus) Close() error {
	return b.bus.Close()
}
