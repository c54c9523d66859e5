package engine

// ============================================================================
// LAYOUT BUILDER: Axes, slider and play/pause controls
// ============================================================================
// Geometry and timing constants are fixed; only titles, log flags, size and
// visibility come from options.
// ============================================================================

// Animation timing in milliseconds.
const (
	stepDuration       = 300
	playFrameDuration  = 500
	playTransition     = 300
	sliderTransition   = 300
	pauseFrameDuration = 0
)

func newLayout(cfg *config, axes3D, showLegend bool) Layout {
	layout := Layout{
		Title:      cfg.Title,
		HoverMode:  "closest",
		ShowLegend: showLegend,
		Margin:     Margin{B: 50, T: 50, Pad: 5},
		Width:      cfg.Width,
		Height:     cfg.Height,
	}

	if axes3D {
		layout.Scene = &Scene{
			XAxis: newAxis(cfg.XTitle, cfg.XLog),
			YAxis: newAxis(cfg.YTitle, cfg.YLog),
			ZAxis: newAxis(cfg.ZTitle, cfg.ZLog),
		}
	} else {
		layout.XAxis = newAxis(cfg.XTitle, cfg.XLog)
		layout.YAxis = newAxis(cfg.YTitle, cfg.YLog)
	}
	return layout
}

func newAxis(title string, logscale bool) *Axis {
	a := &Axis{Title: title}
	if logscale {
		a.Type = "log"
	}
	return a
}

// axes returns the x, y and z axes of l; z is nil for 2D layouts.
func (l *Layout) axes() (x, y, z *Axis) {
	if l.Scene != nil {
		return l.Scene.XAxis, l.Scene.YAxis, l.Scene.ZAxis
	}
	return l.XAxis, l.YAxis, nil
}

func newSlider(prefix string) Slider {
	return Slider{
		YAnchor: "top",
		XAnchor: "left",
		CurrentValue: CurrentValue{
			Font:    Font{Size: 20},
			Prefix:  prefix,
			Visible: true,
			XAnchor: "right",
		},
		Transition: Transition{Duration: sliderTransition, Easing: "cubic-in-out"},
		Pad:        Pad{B: 10, T: 50},
		Len:        0.9,
		X:          0.1,
		Y:          0,
		Steps:      []SliderStep{},
	}
}

// newSliderStep jumps straight to the frame named label.
func newSliderStep(label string) SliderStep {
	return SliderStep{
		Args: AnimateArgs{
			Frames: []*string{&label},
			Options: AnimationOptions{
				Frame:      FrameOptions{Duration: stepDuration},
				Mode:       "immediate",
				Transition: Transition{Duration: stepDuration},
			},
		},
		Label:  label,
		Method: "animate",
	}
}

// newPlayPauseMenu returns the fixed Play / Pause button pair.
func newPlayPauseMenu() UpdateMenu {
	return UpdateMenu{
		Buttons: []Button{
			{
				Args: AnimateArgs{
					Options: AnimationOptions{
						Frame:       FrameOptions{Duration: playFrameDuration},
						FromCurrent: true,
						Transition:  Transition{Duration: playTransition, Easing: "quadratic-in-out"},
					},
				},
				Label:  "Play",
				Method: "animate",
			},
			{
				Args: AnimateArgs{
					Frames: []*string{nil},
					Options: AnimationOptions{
						Frame:      FrameOptions{Duration: pauseFrameDuration},
						Mode:       "immediate",
						Transition: Transition{Duration: 0},
					},
				},
				Label:  "Pause",
				Method: "animate",
			},
		},
		Direction:  "left",
		Pad:        Pad{R: 10, T: 87},
		ShowActive: false,
		Type:       "buttons",
		X:          0.1,
		XAnchor:    "right",
		Y:          0,
		YAnchor:    "top",
	}
}
