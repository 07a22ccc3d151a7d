package gate

// Set holds the gates of an environment, one per resource mode.
type Set struct {
	cpu     *Gate
	network *Gate
}

// NewSet creates the CPU and NETWORK gates. Non-positive capacities fall back to DefaultCapacity.
func NewSet(cpuCapacity, networkCapacity int) *Set {
	if cpuCapacity < 1 {
		cpuCapacity = DefaultCapacity
	}
	if networkCapacity < 1 {
		networkCapacity = DefaultCapacity
	}
	return &Set{
		cpu:     NewGate(string(ModeCPU), cpuCapacity),
		network: NewGate(string(ModeNetwork), networkCapacity),
	}
}

func NewDefaultSet() *Set {
	return NewSet(DefaultCapacity, DefaultCapacity)
}

// For returns the gate guarding mode, or nil for ModeNone and unknown modes.
func (s *Set) For(mode Mode) *Gate {
	switch mode {
	case ModeCPU:
		return s.cpu
	case ModeNetwork:
		return s.network
	default:
		return nil
	}
}

func (s *Set) CPU() *Gate {
	return s.cpu
}

func (s *Set) Network() *Gate {
	return s.network
}

func (s *Set) Stats() []Stats {
	return []Stats{s.cpu.Stats(), s.network.Stats()}
}

// ParseMode maps a mode name to a Mode. The empty string is ModeNone.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeCPU, ModeNetwork, ModeNone:
		return Mode(s), true
	case "":
		return ModeNone, true
	default:
		return "", false
	}
}
