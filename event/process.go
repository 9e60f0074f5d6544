package event

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrUnknownProcess = errors.New("event: received invalid process")

// Process selects the hard scattering drawn by the Gun.
type Process int

const (
	ZprimeTottbar Process = iota + 1
	WprimeToWZLept
	WprimeToWZHad
	QCD
)

var processNames = map[Process]string{
	ZprimeTottbar:  "ZprimeTottbar",
	WprimeToWZLept: "WprimeToWZ_lept",
	WprimeToWZHad:  "WprimeToWZ_had",
	QCD:            "QCD",
}

func (p Process) String() string {
	if name, ok := processNames[p]; ok {
		return name
	}
	return "Process(" + strconv.Itoa(int(p)) + ")"
}

// Valid reports whether p is one of the known processes.
func (p Process) Valid() bool {
	_, ok := processNames[p]
	return ok
}

// ParseProcess accepts a process number (1-4) or its name.
func ParseProcess(s string) (Process, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if p := Process(n); p.Valid() {
			return p, nil
		}
		return 0, fmt.Errorf("%w: %d", ErrUnknownProcess, n)
	}
	for p, name := range processNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProcess, s)
}

// Seed returns seed when it is non-negative and otherwise derives one from
// the wall clock and the process id.
func Seed(seed int) int {
	if seed > -1 {
		return seed
	}
	t := int(time.Now().Unix())
	s := ((t * 181) * ((os.Getpid() - 83) * 359)) % 104729
	if s < 0 {
		s = -s
	}
	return s
}
