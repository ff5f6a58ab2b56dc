//go:build darwin

package serial

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// setSpeed sets the baud rate on the termios struct for macOS.
func setSpeed(termios *unix.Termios, speed uint32) {
	termios.Ispeed = uint64(speed)
	termios.Ospeed = uint64(speed)
}

// baudRateToSpeed maps a numeric baud rate to a termios speed
// constant. macOS only supports the named rates.
func baudRateToSpeed(baud int) (uint32, error) {
	speeds := map[int]uint32{
		9600:   unix.B9600,
		19200:  unix.B19200,
		38400:  unix.B38400,
		57600:  unix.B57600,
		115200: unix.B115200,
		230400: unix.B230400,
	}

	if speed, ok := speeds[baud]; ok {
		return speed, nil
	}

	return 0, fmt.Errorf("serial: unsupported baud rate %d", baud)
}
