//go:build linux

package serial

import (
	"golang.org/x/sys/unix"
)

// setSpeed sets the baud rate on the termios struct for Linux.
func setSpeed(termios *unix.Termios, speed uint32) {
	termios.Ispeed = speed
	termios.Ospeed = speed
}

// baudRateToSpeed maps a numeric baud rate to a termios speed
// constant. Rates without a named constant use BOTHER to request the
// rate directly.
func baudRateToSpeed(baud int) (uint32, error) {
	speeds := map[int]uint32{
		9600:    unix.B9600,
		19200:   unix.B19200,
		38400:   unix.B38400,
		57600:   unix.B57600,
		115200:  unix.B115200,
		230400:  unix.B230400,
		250000:  0x1003, // B250000
		460800:  0x1004, // B460800
		500000:  0x1005, // B500000
		921600:  0x1007, // B921600
		1000000: 0x1008, // B1000000
	}

	if speed, ok := speeds[baud]; ok {
		return speed, nil
	}

	return 0x1000 | uint32(baud), nil // BOTHER
}
