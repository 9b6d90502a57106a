package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Profile is the on-disk HCL form of a machine Config. Every attribute is
// optional; values left out fall back to the Default machine.
//
//	balls {
//	  init               = 1000
//	  incremental_normal = 15
//	  incremental_rush   = 300
//	}
//	probability {
//	  start_hole = 0.12
//	  normal {
//	    win       = 0.16
//	    fake_win  = 0.3
//	    fake_lose = 0.15
//	  }
//	  rush {
//	    win       = 0.48
//	    fake_win  = 0.2
//	    fake_lose = 0.05
//	  }
//	  rush_continue {
//	    win       = 0.8
//	    fake_win  = 0.25
//	    fake_lose = 0.1
//	  }
//	  decay {
//	    curve = "geometric"
//	    ratio = 0.6
//	  }
//	}
type Profile struct {
	Balls       *ballsBlock       `hcl:"balls,block"`
	Probability *probabilityBlock `hcl:"probability,block"`
}

type ballsBlock struct {
	Init              *int `hcl:"init,optional"`
	IncrementalNormal *int `hcl:"incremental_normal,optional"`
	IncrementalRush   *int `hcl:"incremental_rush,optional"`
}

type probabilityBlock struct {
	StartHole    *float64    `hcl:"start_hole,optional"`
	Normal       *probBlock  `hcl:"normal,block"`
	Rush         *probBlock  `hcl:"rush,block"`
	RushContinue *probBlock  `hcl:"rush_continue,block"`
	Decay        *decayBlock `hcl:"decay,block"`
}

type probBlock struct {
	Win      *float64 `hcl:"win,optional"`
	FakeWin  *float64 `hcl:"fake_win,optional"`
	FakeLose *float64 `hcl:"fake_lose,optional"`
}

type decayBlock struct {
	Curve string   `hcl:"curve"`
	Ratio *float64 `hcl:"ratio,optional"`
}

// LoadProfile reads an HCL machine profile, merges it over Default, and
// validates the result.
func LoadProfile(path string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var profile Profile
	if diags := gohcl.DecodeBody(file.Body, nil, &profile); diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg, err := profile.apply(Default())
	if err != nil {
		return Config{}, fmt.Errorf("profile %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return cfg, nil
}

// apply overlays the profile's set values onto base.
func (p Profile) apply(base Config) (Config, error) {
	cfg := base
	if p.Balls != nil {
		setInt(&cfg.Balls.Init, p.Balls.Init)
		setInt(&cfg.Balls.IncrementalNormal, p.Balls.IncrementalNormal)
		setInt(&cfg.Balls.IncrementalRush, p.Balls.IncrementalRush)
	}
	if p.Probability != nil {
		setFloat(&cfg.Probability.StartHole, p.Probability.StartHole)
		applyProb(&cfg.Probability.Normal, p.Probability.Normal)
		applyProb(&cfg.Probability.Rush, p.Probability.Rush)
		applyProb(&cfg.Probability.RushContinue, p.Probability.RushContinue)
		if d := p.Probability.Decay; d != nil {
			if d.Ratio == nil && d.Curve != "constant" {
				return Config{}, fmt.Errorf("decay curve %q requires ratio", d.Curve)
			}
			ratio := 0.0
			if d.Ratio != nil {
				ratio = *d.Ratio
			}
			fn, err := DecayCurve(d.Curve, ratio)
			if err != nil {
				return Config{}, err
			}
			cfg.Probability.RushContinueFn = fn
		}
	}
	return cfg, nil
}

func applyProb(dst *SlotProbability, src *probBlock) {
	if src == nil {
		return
	}
	setFloat(&dst.Win, src.Win)
	setFloat(&dst.FakeWin, src.FakeWin)
	setFloat(&dst.FakeLose, src.FakeLose)
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
