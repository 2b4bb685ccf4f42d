package keymap_test

import (
	"errors"
	"testing"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/keymap"
	. "github.com/onsi/gomega"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"12+3=", []string{"1", "2", "+", "3", "="}},
		{"1 2\t3", []string{"1", "2", "3"}},
		{"12{Backspace}3{Enter}", []string{"1", "2", "Backspace", "3", "Enter"}},
		{"8÷2", []string{"8", "÷", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g := NewWithT(t)
			got, err := keymap.Split(tt.in)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(got).To(Equal(tt.want))
		})
	}
}

func TestSplitRejectsBadNames(t *testing.T) {
	for _, in := range []string{"1{Enter", "{}"} {
		if _, err := keymap.Split(in); err == nil {
			t.Errorf("Split(%q): expected error", in)
		}
	}
}

func TestDefaultBindings(t *testing.T) {
	g := NewWithT(t)
	km := keymap.Default()

	tests := map[string]calcx.Action{
		"7":         calcx.DigitKey(7),
		",":         calcx.Decimal,
		"Enter":     calcx.Equals,
		"Backspace": calcx.Delete,
		"Escape":    calcx.Clear,
		"%":         calcx.Percent,
		"n":         calcx.ToggleSign,
		"x":         calcx.OperatorKey(calcx.OpMultiply),
		"Divide":    calcx.OperatorKey(calcx.OpDivide),
		"-":         calcx.OperatorKey(calcx.OpSubtract),
	}
	for key, want := range tests {
		got, err := km.Lookup(key)
		g.Expect(err).NotTo(HaveOccurred(), key)
		g.Expect(got).To(Equal(want), key)
	}

	_, err := km.Lookup("F13")
	g.Expect(errors.Is(err, keymap.ErrUnboundKey)).To(BeTrue())
}

func TestOverrides(t *testing.T) {
	g := NewWithT(t)

	km, err := keymap.New(map[string]string{
		"Return": "equals",
		"m":      "operator:×",
		"c":      "delete",
	})
	g.Expect(err).NotTo(HaveOccurred())

	for key, want := range map[string]calcx.Action{
		"Return": calcx.Equals,
		"m":      calcx.OperatorKey(calcx.OpMultiply),
		"c":      calcx.Delete,
		"C":      calcx.Clear,
	} {
		got, err := km.Lookup(key)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got).To(Equal(want), key)
	}

	_, err = keymap.New(map[string]string{"q": "quit"})
	g.Expect(err).To(MatchError(calcx.ErrUnknownAction))
}

func TestActionsDriveEngine(t *testing.T) {
	g := NewWithT(t)
	km := keymap.Default()

	keys, err := keymap.Split("5+3x2{Enter}")
	g.Expect(err).NotTo(HaveOccurred())
	actions, err := km.Actions(keys)
	g.Expect(err).NotTo(HaveOccurred())

	snap, err := calcx.New().DispatchAll(actions)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(snap.Display).To(Equal("16"))

	_, err = km.Actions([]string{"1", "?"})
	g.Expect(err).To(MatchError(keymap.ErrUnboundKey))
}

func TestKeysSorted(t *testing.T) {
	keys := keymap.Default().Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted at %d: %q >= %q", i, keys[i-1], keys[i])
		}
	}
}
