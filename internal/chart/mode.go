package chart

import (
	"fmt"
	"strings"
)

type Mode int

const (
	Monthly Mode = iota
	Causes
	CausesPerMonth
	Map
)

var modeNames = map[Mode]string{
	Monthly:        "monthly",
	Causes:         "causes",
	CausesPerMonth: "causesPerMonth",
	Map:            "map",
}

// menuTitles are the selector entries shown next to each mode.
var menuTitles = map[Mode]string{
	Monthly:        "Treinstoringen per maand",
	Causes:         "Oorzaak treinstoringen",
	CausesPerMonth: "Oorzaken per maand",
	Map:            "Storingen op het spoor",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) MenuTitle() string { return menuTitles[m] }

func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("unknown chart mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Modes lists every mode in selector order.
func Modes() []Mode {
	return []Mode{Monthly, Causes, Map, CausesPerMonth}
}

// ParseMode accepts the selector values, case-insensitively.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown chart mode %q", s)
}
