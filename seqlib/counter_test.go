package seqlib_test

import (
	"testing"

	ss "github.com/db47h/seqsim"
	sl "github.com/db47h/seqsim/seqlib"
)

// Count across the 255 -> 0 rollover, pull reset in the middle, count on.
func TestUpCounter8_walk(t *testing.T) {
	st := ss.NewStepper(sl.UpCounter8())
	exp := uint64(0)
	for i := 0; i < 300; i++ {
		rst := "0"
		if i == 270 {
			rst = "1"
		}
		o := st.Step(ss.CycleVector{"reset": ss.MustValue(rst)})
		if rst == "1" {
			exp = 0
		} else {
			exp = (exp + 1) & 0xff
		}
		if got, ok := o.Out["q"].Uint(); !ok || got != exp {
			t.Fatalf("cycle %d: q=%s, want %d", i, o.Out["q"], exp)
		}
	}
}
