package seqsim_test

import (
	"testing"

	ss "github.com/db47h/seqsim"
)

func TestBit_ops(t *testing.T) {
	td := []struct {
		name string
		got  ss.Bit
		want ss.Bit
	}{
		{"not0", ss.Lo.Not(), ss.Hi},
		{"not1", ss.Hi.Not(), ss.Lo},
		{"notx", ss.Undef.Not(), ss.Undef},
		{"notz", ss.HiZ.Not(), ss.Undef},
		{"and00", ss.Lo.And(ss.Lo), ss.Lo},
		{"and11", ss.Hi.And(ss.Hi), ss.Hi},
		{"and0x", ss.Lo.And(ss.Undef), ss.Lo},
		{"and1x", ss.Hi.And(ss.Undef), ss.Undef},
		{"and1z", ss.Hi.And(ss.HiZ), ss.Undef},
		{"or10", ss.Hi.Or(ss.Lo), ss.Hi},
		{"or1x", ss.Hi.Or(ss.Undef), ss.Hi},
		{"or0x", ss.Lo.Or(ss.Undef), ss.Undef},
		{"or0z", ss.Lo.Or(ss.HiZ), ss.Undef},
		{"xor01", ss.Lo.Xor(ss.Hi), ss.Hi},
		{"xor11", ss.Hi.Xor(ss.Hi), ss.Lo},
		{"xor1x", ss.Hi.Xor(ss.Undef), ss.Undef},
		{"xor0z", ss.Lo.Xor(ss.HiZ), ss.Undef},
	}
	for _, d := range td {
		if d.got != d.want {
			t.Errorf("%s: got %s, want %s", d.name, d.got, d.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	td := []struct {
		in  string
		out string
		err bool
	}{
		{"0010", "0010", false},
		{"1XzZ", "1xzz", false},
		{"x", "x", false},
		{"", "", true},
		{"01012", "", true},
		{"10 1", "", true},
	}
	for _, d := range td {
		v, err := ss.ParseValue(d.in)
		if d.err {
			if err == nil {
				t.Errorf("ParseValue(%q): expected error", d.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseValue(%q): %v", d.in, err)
			continue
		}
		if v.String() != d.out {
			t.Errorf("ParseValue(%q) = %s, want %s", d.in, v, d.out)
		}
	}
}

func TestValue_arith(t *testing.T) {
	td := []struct {
		name string
		got  ss.Value
		want string
	}{
		{"dec wrap", ss.MustValue("0000").Dec(), "1111"},
		{"dec one", ss.MustValue("0001").Dec(), "0000"},
		{"dec mid", ss.MustValue("1000").Dec(), "0111"},
		{"dec x stops at known borrow", ss.MustValue("1x10").Dec(), "1x01"},
		{"dec all x", ss.MustValue("xxxx").Dec(), "xxxx"},
		{"dec z as x", ss.MustValue("z110").Dec(), "x101"},
		{"inc wrap", ss.MustValue("1111").Inc(), "0000"},
		{"inc mid", ss.MustValue("0111").Inc(), "1000"},
		{"inc x", ss.MustValue("10x1").Inc(), "1xx0"},
		{"shift in 1", ss.MustValue("0010").ShiftInLSB(ss.Hi), "0101"},
		{"shift in 0", ss.MustValue("1000").ShiftInLSB(ss.Lo), "0000"},
		{"shift in z", ss.MustValue("z101").ShiftInLSB(ss.HiZ), "101x"},
		{"capture", ss.MustValue("01zx").Capture(), "01xx"},
	}
	for _, d := range td {
		if d.got.String() != d.want {
			t.Errorf("%s: got %s, want %s", d.name, d.got, d.want)
		}
	}
}

func TestValue_uint(t *testing.T) {
	for _, u := range []uint64{0, 1, 5, 11, 15} {
		v := ss.FromUint(u, 4)
		got, ok := v.Uint()
		if !ok || got != u {
			t.Errorf("FromUint(%d, 4) = %s, Uint() = %d, %v", u, v, got, ok)
		}
	}
	if v := ss.FromUint(11, 4); v.String() != "1011" {
		t.Errorf("FromUint(11, 4) = %s, want 1011", v)
	}
	if _, ok := ss.MustValue("10x1").Uint(); ok {
		t.Error("Uint() of a partially unknown value did not fail")
	}
}

func TestValue_equal(t *testing.T) {
	td := []struct {
		a, b string
		want bool
	}{
		{"1010", "1010", true},
		{"1010", "1011", false},
		{"1z", "1x", true},
		{"x", "0", false},
		{"10", "010", false},
	}
	for _, d := range td {
		if got := ss.MustValue(d.a).Equal(ss.MustValue(d.b)); got != d.want {
			t.Errorf("Equal(%s, %s) = %v, want %v", d.a, d.b, got, d.want)
		}
	}
}
