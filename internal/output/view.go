package output

import (
	"encoding/hex"
	"fmt"
	"math"

	"github.com/chabad360/osc-codec/osc"
)

// PacketView is the rendering model shared by every formatter.
type PacketView struct {
	Kind      string         `json:"kind" yaml:"kind"`
	Source    string         `json:"source,omitempty" yaml:"source,omitempty"`
	Address   string         `json:"address,omitempty" yaml:"address,omitempty"`
	TypeTags  string         `json:"type_tags,omitempty" yaml:"type_tags,omitempty"`
	Arguments []ArgumentView `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Timetag   string         `json:"timetag,omitempty" yaml:"timetag,omitempty"`
	Immediate bool           `json:"immediate,omitempty" yaml:"immediate,omitempty"`
	Elements  []PacketView   `json:"elements,omitempty" yaml:"elements,omitempty"`
}

type ArgumentView struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// View converts p into its rendering model. Blobs are shown as hex.
func View(p osc.Packet) PacketView {
	switch p := p.(type) {
	case *osc.Message:
		v := PacketView{Kind: "message", Address: p.Address, TypeTags: p.TypeTags()}
		for _, arg := range p.Arguments {
			v.Arguments = append(v.Arguments, argumentView(arg))
		}
		return v
	case *osc.Bundle:
		v := PacketView{
			Kind:      "bundle",
			Timetag:   fmt.Sprintf("%#016x", uint64(p.Timetag)),
			Immediate: p.Timetag.IsImmediate(),
		}
		for _, elem := range p.Elements {
			v.Elements = append(v.Elements, View(elem))
		}
		return v
	default:
		return PacketView{Kind: "unknown"}
	}
}

func argumentView(arg osc.Argument) ArgumentView {
	v := ArgumentView{Type: string(rune(arg.TypeTag()))}
	switch a := arg.(type) {
	case osc.Int32:
		v.Value = int32(a)
	case osc.Float32:
		v.Value = floatValue(float32(a))
	case osc.String:
		v.Value = string(a)
	case osc.Blob:
		v.Value = hex.EncodeToString(a)
	}
	return v
}

// floatValue keeps finite floats numeric. Infinities and NaN become the
// strings "+Inf", "-Inf" and "NaN", which JSON cannot carry as numbers.
func floatValue(f float32) any {
	switch g := float64(f); {
	case math.IsNaN(g):
		return "NaN"
	case math.IsInf(g, 1):
		return "+Inf"
	case math.IsInf(g, -1):
		return "-Inf"
	default:
		return f
	}
}
