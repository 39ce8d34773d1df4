// SPDX-License-Identifier: Unlicense OR MIT

// Package config holds every tunable the interaction core exposes (§6
// "Configuration surface"), each with the stated default, and supports
// loading host overrides from a TOML document — the same configuration
// style the centered toolkit's `ctd` CLI uses for its own project file
// (cmd/ctd/commands/config.go's `centered.toml`).
package config

import (
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/fluxkit/interaction/internal/easing"
	"github.com/fluxkit/interaction/unit"
)

// Config collects every authoritative, author- and theme-overridable
// constant named in §6.
type Config struct {
	TapOrScrollTimeout       time.Duration
	PointerInactivityTimeout time.Duration
	PointerSlopThreshold     unit.Dp

	MinimumFlingVelocity unit.Dp
	MaximumFlingVelocity unit.Dp

	ScrollCommandDuration time.Duration
	ScrollSnapDuration    time.Duration

	UEScrollerDeceleration float32
	UEScrollerMaxDuration  time.Duration

	ScrollAngleSlopeVertical   float32
	ScrollAngleSlopeHorizontal float32

	SwipeAngleTolerance                          float32
	SwipeVelocityThreshold                       unit.Dp
	SwipeMaxVelocity                             unit.Dp
	SwipeAwayFulfillDistancePercentageThreshold  float32
	DefaultSwipeAnimationDuration                time.Duration
	MaxSwipeAnimationDuration                    time.Duration

	DoublePressTimeout time.Duration
	LongPressTimeout   time.Duration
	MaximumTapTravel   unit.Dp
	MaximumTapVelocity unit.Dp

	DefaultPagerAnimationDuration time.Duration

	// Timing curves (§4.2, §6). These have no TOML-friendly scalar
	// representation, so unlike the fields above they are not
	// individually overridable via LoadTOML; a host that needs a
	// different curve constructs a Config and replaces the field
	// directly.
	ScrollCommandEasing      easing.Func
	UEScrollerVelocityEasing easing.Func
	UEScrollerDurationEasing easing.Func
	DefaultPagerAnimationEasing easing.Func

	// EditTextTapToFocus feature-flags §4.5's "Edit-text tap-to-focus".
	EditTextTapToFocus bool
}

// Default returns the configuration with every §6 default applied.
func Default() Config {
	return Config{
		TapOrScrollTimeout:       100 * time.Millisecond,
		PointerInactivityTimeout: 250 * time.Millisecond,
		PointerSlopThreshold:     10,

		MinimumFlingVelocity: 50,
		MaximumFlingVelocity: 1200,

		ScrollCommandDuration: 1000 * time.Millisecond,
		ScrollSnapDuration:    500 * time.Millisecond,

		UEScrollerDeceleration: 0.2,
		UEScrollerMaxDuration:  3000 * time.Millisecond,

		ScrollAngleSlopeVertical:   1.48,
		ScrollAngleSlopeHorizontal: 0.64,

		SwipeAngleTolerance:                         0.84,
		SwipeVelocityThreshold:                       500,
		SwipeMaxVelocity:                             2000,
		SwipeAwayFulfillDistancePercentageThreshold: 0.5,
		DefaultSwipeAnimationDuration:                200 * time.Millisecond,
		MaxSwipeAnimationDuration:                    400 * time.Millisecond,

		DoublePressTimeout: 500 * time.Millisecond,
		LongPressTimeout:   500 * time.Millisecond,
		MaximumTapTravel:   10,
		MaximumTapVelocity: 200,

		DefaultPagerAnimationDuration: 600 * time.Millisecond,

		ScrollCommandEasing:         easing.CubicBezier(0.42, 0, 0.58, 1),
		UEScrollerVelocityEasing:    easing.Linear,
		UEScrollerDurationEasing:    easing.CubicBezier(0.65, 0, 0.35, 1),
		DefaultPagerAnimationEasing: easing.Linear,

		EditTextTapToFocus: false,
	}
}

// document mirrors Config field-for-field but in TOML-friendly scalar
// types (milliseconds as integers, dp as plain float32) — every pointer
// field is nil unless the document explicitly sets it, which is how
// LoadTOML tells "overridden" from "left at its Go zero value" apart.
type document struct {
	TapOrScrollTimeoutMs       *int64   `toml:"tap_or_scroll_timeout_ms"`
	PointerInactivityTimeoutMs *int64   `toml:"pointer_inactivity_timeout_ms"`
	PointerSlopThresholdDp     *float32 `toml:"pointer_slop_threshold_dp"`

	MinimumFlingVelocityDpS *float32 `toml:"minimum_fling_velocity_dp_s"`
	MaximumFlingVelocityDpS *float32 `toml:"maximum_fling_velocity_dp_s"`

	ScrollCommandDurationMs *int64 `toml:"scroll_command_duration_ms"`
	ScrollSnapDurationMs    *int64 `toml:"scroll_snap_duration_ms"`

	UEScrollerDeceleration  *float32 `toml:"ue_scroller_deceleration"`
	UEScrollerMaxDurationMs *int64   `toml:"ue_scroller_max_duration_ms"`

	ScrollAngleSlopeVertical   *float32 `toml:"scroll_angle_slope_vertical"`
	ScrollAngleSlopeHorizontal *float32 `toml:"scroll_angle_slope_horizontal"`

	SwipeAngleToleranceRad                 *float32 `toml:"swipe_angle_tolerance_rad"`
	SwipeVelocityThresholdDpS              *float32 `toml:"swipe_velocity_threshold_dp_s"`
	SwipeMaxVelocityDpS                    *float32 `toml:"swipe_max_velocity_dp_s"`
	SwipeFulfillDistancePct                *float32 `toml:"swipe_fulfill_distance_pct"`
	DefaultSwipeAnimationDurationMs        *int64   `toml:"default_swipe_animation_duration_ms"`
	MaxSwipeAnimationDurationMs            *int64   `toml:"max_swipe_animation_duration_ms"`

	DoublePressTimeoutMs *int64   `toml:"double_press_timeout_ms"`
	LongPressTimeoutMs   *int64   `toml:"long_press_timeout_ms"`
	MaximumTapTravelDp   *float32 `toml:"maximum_tap_travel_dp"`
	MaximumTapVelocityDp *float32 `toml:"maximum_tap_velocity_dp_s"`

	DefaultPagerAnimationDurationMs *int64 `toml:"default_pager_animation_duration_ms"`

	EditTextTapToFocus *bool `toml:"edit_text_tap_to_focus"`
}

// LoadTOML decodes a TOML document of overrides onto a copy of base,
// leaving any field the document does not mention untouched.
func LoadTOML(base Config, doc []byte) (Config, error) {
	var d document
	if err := toml.Unmarshal(doc, &d); err != nil {
		return base, err
	}
	cfg := base
	applyMs(&cfg.TapOrScrollTimeout, d.TapOrScrollTimeoutMs)
	applyMs(&cfg.PointerInactivityTimeout, d.PointerInactivityTimeoutMs)
	applyDp(&cfg.PointerSlopThreshold, d.PointerSlopThresholdDp)
	applyDp(&cfg.MinimumFlingVelocity, d.MinimumFlingVelocityDpS)
	applyDp(&cfg.MaximumFlingVelocity, d.MaximumFlingVelocityDpS)
	applyMs(&cfg.ScrollCommandDuration, d.ScrollCommandDurationMs)
	applyMs(&cfg.ScrollSnapDuration, d.ScrollSnapDurationMs)
	applyF32(&cfg.UEScrollerDeceleration, d.UEScrollerDeceleration)
	applyMs(&cfg.UEScrollerMaxDuration, d.UEScrollerMaxDurationMs)
	applyF32(&cfg.ScrollAngleSlopeVertical, d.ScrollAngleSlopeVertical)
	applyF32(&cfg.ScrollAngleSlopeHorizontal, d.ScrollAngleSlopeHorizontal)
	applyF32(&cfg.SwipeAngleTolerance, d.SwipeAngleToleranceRad)
	applyDp(&cfg.SwipeVelocityThreshold, d.SwipeVelocityThresholdDpS)
	applyDp(&cfg.SwipeMaxVelocity, d.SwipeMaxVelocityDpS)
	applyF32(&cfg.SwipeAwayFulfillDistancePercentageThreshold, d.SwipeFulfillDistancePct)
	applyMs(&cfg.DefaultSwipeAnimationDuration, d.DefaultSwipeAnimationDurationMs)
	applyMs(&cfg.MaxSwipeAnimationDuration, d.MaxSwipeAnimationDurationMs)
	applyMs(&cfg.DoublePressTimeout, d.DoublePressTimeoutMs)
	applyMs(&cfg.LongPressTimeout, d.LongPressTimeoutMs)
	applyDp(&cfg.MaximumTapTravel, d.MaximumTapTravelDp)
	applyDp(&cfg.MaximumTapVelocity, d.MaximumTapVelocityDp)
	applyMs(&cfg.DefaultPagerAnimationDuration, d.DefaultPagerAnimationDurationMs)
	if d.EditTextTapToFocus != nil {
		cfg.EditTextTapToFocus = *d.EditTextTapToFocus
	}
	return cfg, nil
}

func applyMs(dst *time.Duration, v *int64) {
	if v != nil {
		*dst = time.Duration(*v) * time.Millisecond
	}
}

func applyDp(dst *unit.Dp, v *float32) {
	if v != nil {
		*dst = unit.Dp(*v)
	}
}

func applyF32(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}
