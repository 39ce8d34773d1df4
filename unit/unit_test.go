// SPDX-License-Identifier: Unlicense OR MIT

package unit_test

import (
	"testing"

	"github.com/fluxkit/interaction/unit"
)

func TestMetricConversions(t *testing.T) {
	m := unit.Metric{PxPerDp: 2, PxPerSp: 3}

	if exp, got := m.Dp(5), m.Sp(m.DpToSp(5)); exp != got {
		t.Errorf("DpToSp round trip mismatch %v != %v", exp, got)
	}
	if exp, got := m.Sp(5), m.Dp(m.SpToDp(5)); exp != got {
		t.Errorf("SpToDp round trip mismatch %v != %v", exp, got)
	}
	if exp, got := unit.Dp(5), m.PxToDp(m.Dp(5)); exp != got {
		t.Errorf("PxToDp round trip mismatch %v != %v", exp, got)
	}
	if exp, got := unit.Sp(5), m.PxToSp(m.Sp(5)); exp != got {
		t.Errorf("PxToSp round trip mismatch %v != %v", exp, got)
	}
}
