package actuator

import "strings"

// Needs is the set of actuators an action drives.
type Needs uint

const (
	NeedLED Needs = 1 << iota
	NeedBuzzer
	NeedMatrix
	NeedDisplay
)

var needNames = []struct {
	need Needs
	name string
}{
	{NeedLED, "led"},
	{NeedBuzzer, "buzzer"},
	{NeedMatrix, "matrix"},
	{NeedDisplay, "display"},
}

// Has reports whether every actuator in other is also in n.
func (n Needs) Has(other Needs) bool {
	return n&other == other
}

func (n Needs) String() string {
	var names []string
	for _, nn := range needNames {
		if n.Has(nn.need) {
			names = append(names, nn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
